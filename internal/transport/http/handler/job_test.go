package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/transport/http/handler"
	"github.com/medetbek/taskqueue/internal/usecase"
)

type fakeJobUsecase struct {
	create    func(ctx context.Context, userID int64, input usecase.CreateJobInput) (*domain.Job, error)
	list      func(ctx context.Context, userID int64) ([]*domain.Job, error)
	get       func(ctx context.Context, userID, jobID int64) (*domain.Job, error)
	update    func(ctx context.Context, userID, jobID int64, patch domain.JobPatch) (*domain.Job, error)
	setStatus func(ctx context.Context, userID, jobID int64, status domain.Status) (*domain.Job, error)
	del       func(ctx context.Context, userID, jobID int64) error
	deleteAll func(ctx context.Context, userID int64) (int64, error)
}

func (f *fakeJobUsecase) Create(ctx context.Context, userID int64, input usecase.CreateJobInput) (*domain.Job, error) {
	return f.create(ctx, userID, input)
}

func (f *fakeJobUsecase) List(ctx context.Context, userID int64) ([]*domain.Job, error) {
	return f.list(ctx, userID)
}

func (f *fakeJobUsecase) Get(ctx context.Context, userID, jobID int64) (*domain.Job, error) {
	return f.get(ctx, userID, jobID)
}

func (f *fakeJobUsecase) Update(ctx context.Context, userID, jobID int64, patch domain.JobPatch) (*domain.Job, error) {
	return f.update(ctx, userID, jobID, patch)
}

func (f *fakeJobUsecase) SetStatus(ctx context.Context, userID, jobID int64, status domain.Status) (*domain.Job, error) {
	return f.setStatus(ctx, userID, jobID, status)
}

func (f *fakeJobUsecase) Delete(ctx context.Context, userID, jobID int64) error {
	return f.del(ctx, userID, jobID)
}

func (f *fakeJobUsecase) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return f.deleteAll(ctx, userID)
}

func newJobEngine(uc *fakeJobUsecase, callerID int64) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewJobHandler(uc, logger)

	r := gin.New()
	jobs := r.Group("/jobs", asUser(callerID))
	jobs.POST("", h.Create)
	jobs.GET("", h.List)
	jobs.GET("/:id", h.GetByID)
	jobs.PUT("/:id", h.Update)
	jobs.PUT("/:id/status", h.SetStatus)
	jobs.DELETE("/:id", h.Delete)
	jobs.DELETE("", h.DeleteAll)
	return r
}

// ---- Create ----

func TestCreateJob_MissingTitle_Returns400(t *testing.T) {
	w := doJSON(newJobEngine(&fakeJobUsecase{}, 1), http.MethodPost, "/jobs", `{"description":"no title"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateJob_Success_Returns201WithDefaultStatus(t *testing.T) {
	uc := &fakeJobUsecase{
		create: func(_ context.Context, userID int64, input usecase.CreateJobInput) (*domain.Job, error) {
			return &domain.Job{ID: 10, UserID: userID, Title: input.Title, Status: domain.StatusQueued}, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodPost, "/jobs", `{"title":"Write report"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != 10 {
		t.Errorf("id = %d, want 10", resp.ID)
	}
	if resp.Status != string(domain.StatusQueued) {
		t.Errorf("status = %q, want %q", resp.Status, domain.StatusQueued)
	}
}

// ---- Get ----

func TestGetJob_NotOwned_Returns404(t *testing.T) {
	uc := &fakeJobUsecase{
		get: func(_ context.Context, _, _ int64) (*domain.Job, error) {
			return nil, domain.ErrJobNotFound
		},
	}
	w := doJSON(newJobEngine(uc, 2), http.MethodGet, "/jobs/10", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (not 403 — existence must not leak)", w.Code)
	}
}

func TestGetJob_NonNumericID_Returns404(t *testing.T) {
	w := doJSON(newJobEngine(&fakeJobUsecase{}, 1), http.MethodGet, "/jobs/abc", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetJob_Owned_Returns200(t *testing.T) {
	uc := &fakeJobUsecase{
		get: func(_ context.Context, userID, jobID int64) (*domain.Job, error) {
			return &domain.Job{ID: jobID, UserID: userID, Title: "Write report", Status: domain.StatusQueued}, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodGet, "/jobs/10", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// ---- List ----

func TestListJobs_Empty_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeJobUsecase{
		list: func(_ context.Context, _ int64) ([]*domain.Job, error) {
			return nil, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodGet, "/jobs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

// ---- SetStatus ----

func TestSetStatus_InvalidValue_Returns400(t *testing.T) {
	uc := &fakeJobUsecase{
		setStatus: func(_ context.Context, _, _ int64, status domain.Status) (*domain.Job, error) {
			if !status.Valid() {
				return nil, domain.ErrInvalidStatus
			}
			return &domain.Job{ID: 10, Status: status}, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodPut, "/jobs/10/status", `{"status":"WONTFIX"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSetStatus_Done_Returns200(t *testing.T) {
	uc := &fakeJobUsecase{
		setStatus: func(_ context.Context, userID, jobID int64, status domain.Status) (*domain.Job, error) {
			return &domain.Job{ID: jobID, UserID: userID, Status: status}, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodPut, "/jobs/10/status", `{"status":"DONE"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "DONE" {
		t.Errorf("status = %q, want DONE", resp.Status)
	}
}

// ---- Delete / DeleteAll ----

func TestDeleteJob_NotOwned_Returns404(t *testing.T) {
	uc := &fakeJobUsecase{
		del: func(_ context.Context, _, _ int64) error {
			return domain.ErrJobNotFound
		},
	}
	w := doJSON(newJobEngine(uc, 2), http.MethodDelete, "/jobs/10", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteJob_Owned_ReturnsCountOne(t *testing.T) {
	uc := &fakeJobUsecase{
		del: func(_ context.Context, _, _ int64) error { return nil },
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodDelete, "/jobs/10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Deleted int `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", resp.Deleted)
	}
}

func TestDeleteAll_ZeroJobs_Returns200WithZeroCount(t *testing.T) {
	uc := &fakeJobUsecase{
		deleteAll: func(_ context.Context, _ int64) (int64, error) {
			return 0, nil
		},
	}
	w := doJSON(newJobEngine(uc, 1), http.MethodDelete, "/jobs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Deleted != 0 {
		t.Errorf("deleted = %d, want 0", resp.Deleted)
	}
}
