package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/transport/http/handler"
	"github.com/medetbek/taskqueue/internal/transport/http/middleware"
	"github.com/medetbek/taskqueue/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via
// method matching.
type fakeAuthUsecase struct {
	register       func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	login          func(ctx context.Context, email, password string) (*domain.User, string, error)
	getProfile     func(ctx context.Context, userID int64) (*domain.User, error)
	updateProfile  func(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.User, error)
	changePassword func(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return f.getProfile(ctx, userID)
}

func (f *fakeAuthUsecase) UpdateProfile(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.User, error) {
	return f.updateProfile(ctx, userID, patch)
}

func (f *fakeAuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return f.changePassword(ctx, userID, oldPassword, newPassword)
}

// asUser simulates a request that already passed the Auth middleware.
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", asUser(7), h.Me)
	r.PUT("/auth/profile", asUser(7), h.UpdateProfile)
	r.POST("/auth/change-password", asUser(7), h.ChangePassword)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validRegisterBody = `{
	"first_name": "Alice",
	"last_name":  "Smith",
	"username":   "alice",
	"email":      "alice@example.com",
	"password":   "hunter2hunter2"
}`

// ---- Register ----

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_MissingFields_Returns400(t *testing.T) {
	w := doJSON(newAuthEngine(&fakeAuthUsecase{}), http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register", validRegisterBody)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_Success_Returns201WithoutHash(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{
				ID:           1,
				FirstName:    input.FirstName,
				LastName:     input.LastName,
				Username:     input.Username,
				Email:        input.Email,
				PasswordHash: "$2a$10$secret-must-not-leak",
			}, nil
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/register", validRegisterBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"alice@example.com"`) {
		t.Errorf("body %q missing email", body)
	}
	if strings.Contains(body, "secret-must-not-leak") || strings.Contains(body, "password") {
		t.Errorf("response leaks password material: %q", body)
	}
}

// ---- Login ----

func TestLogin_BadCredentials_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogin_Success_ReturnsTokenAndUser(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: 1, Email: email}, "signed.jwt.token", nil
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "signed.jwt.token") {
		t.Errorf("body %q missing token", body)
	}
	if !strings.Contains(body, `"user"`) {
		t.Errorf("body %q missing user", body)
	}
}

// ---- UpdateProfile ----

func TestUpdateProfile_UserMissing_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		updateProfile: func(_ context.Context, _ int64, _ domain.UserPatch) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPut, "/auth/profile", `{"first_name":"Aliya"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateProfile_PartialBody_OnlyPresentFieldsPatched(t *testing.T) {
	var captured domain.UserPatch
	uc := &fakeAuthUsecase{
		updateProfile: func(_ context.Context, _ int64, patch domain.UserPatch) (*domain.User, error) {
			captured = patch
			return &domain.User{ID: 7, FirstName: *patch.FirstName}, nil
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPut, "/auth/profile", `{"first_name":"Aliya"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured.FirstName == nil || *captured.FirstName != "Aliya" {
		t.Errorf("first_name not patched, got %+v", captured)
	}
	if captured.LastName != nil || captured.Email != nil {
		t.Errorf("absent fields must stay nil, got %+v", captured)
	}
}

// ---- ChangePassword ----

func TestChangePassword_WrongOld_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		changePassword: func(_ context.Context, _ int64, _, _ string) error {
			return domain.ErrInvalidCredentials
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/change-password",
		`{"old_password":"wrong","new_password":"brand-new-pass"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChangePassword_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		changePassword: func(_ context.Context, userID int64, oldPassword, newPassword string) error {
			if userID != 7 || oldPassword != "old-password" || newPassword != "brand-new-pass" {
				return errors.New("unexpected arguments")
			}
			return nil
		},
	}
	w := doJSON(newAuthEngine(uc), http.MethodPost, "/auth/change-password",
		`{"old_password":"old-password","new_password":"brand-new-pass"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
