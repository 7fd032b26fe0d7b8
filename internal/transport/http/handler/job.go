package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/transport/http/middleware"
	"github.com/medetbek/taskqueue/internal/usecase"
)

type jobUsecaser interface {
	Create(ctx context.Context, userID int64, input usecase.CreateJobInput) (*domain.Job, error)
	List(ctx context.Context, userID int64) ([]*domain.Job, error)
	Get(ctx context.Context, userID, jobID int64) (*domain.Job, error)
	Update(ctx context.Context, userID, jobID int64, patch domain.JobPatch) (*domain.Job, error)
	SetStatus(ctx context.Context, userID, jobID int64, status domain.Status) (*domain.Job, error)
	Delete(ctx context.Context, userID, jobID int64) error
	DeleteAll(ctx context.Context, userID int64) (int64, error)
}

type JobHandler struct {
	jobUsecase jobUsecaser
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type jobResponse struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Status      domain.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		UserID:      j.UserID,
		Title:       j.Title,
		Description: j.Description,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func jobID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// A non-numeric id can never match a row; same contract as not-owned.
		c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
		return 0, false
	}
	return id, true
}

type createJobRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errTitleRequired})
		return
	}

	job, err := h.jobUsecase.Create(c.Request.Context(), userID, usecase.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errTitleRequired})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toJobResponse(job))
}

// GET /jobs
// Newest first; only the caller's own jobs.
func (h *JobHandler) List(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	jobs, err := h.jobUsecase.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	c.JSON(http.StatusOK, out)
}

// GET /jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.jobUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get job", "job_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

type updateJobRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *domain.Status `json:"status"`
}

// PUT /jobs/:id
// Only the fields present in the body are applied.
func (h *JobHandler) Update(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobUsecase.Update(c.Request.Context(), userID, id, domain.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
		case errors.Is(err, domain.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": errTitleRequired})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update job", "job_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

type setStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// PUT /jobs/:id/status
func (h *JobHandler) SetStatus(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		return
	}

	job, err := h.jobUsecase.SetStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "set job status", "job_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	id, ok := jobID(c)
	if !ok {
		return
	}

	if err := h.jobUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete job", "job_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": 1,
		"message": fmt.Sprintf("Job %d deleted successfully", id),
	})
}

// DELETE /jobs
// Zero deletions is a valid outcome, never an error.
func (h *JobHandler) DeleteAll(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	count, err := h.jobUsecase.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "delete all jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
