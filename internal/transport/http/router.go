package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/taskqueue/internal/transport/http/handler"
	"github.com/medetbek/taskqueue/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, jobHandler *handler.JobHandler, tokens middleware.TokenValidator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected auth routes
	auth.GET("/me", authMW, authHandler.Me)
	auth.PUT("/profile", authMW, authHandler.UpdateProfile)
	auth.POST("/change-password", authMW, authHandler.ChangePassword)

	// Protected job routes
	jobs := r.Group("/jobs", authMW)
	jobs.POST("", jobHandler.Create)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.GetByID)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.PUT("/:id/status", jobHandler.SetStatus)
	jobs.DELETE("/:id", jobHandler.Delete)
	jobs.DELETE("", jobHandler.DeleteAll)

	return r
}
