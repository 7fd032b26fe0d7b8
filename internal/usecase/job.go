package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/repository"
)

// Enqueuer pushes a simulated processing task for a freshly created job.
// The queue is a placeholder pipeline: nothing it does flows back into the
// job record, and an enqueue failure never fails the request.
type Enqueuer interface {
	EnqueueProcess(ctx context.Context, jobID, userID int64, title string) error
}

type JobUsecase struct {
	repo   repository.JobRepository
	queue  Enqueuer
	logger *slog.Logger
}

func NewJobUsecase(repo repository.JobRepository, queue Enqueuer, logger *slog.Logger) *JobUsecase {
	return &JobUsecase{
		repo:   repo,
		queue:  queue,
		logger: logger.With("component", "job_usecase"),
	}
}

type CreateJobInput struct {
	Title       string
	Description *string
}

func (u *JobUsecase) Create(ctx context.Context, userID int64, input CreateJobInput) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	created, err := u.repo.Create(ctx, &domain.Job{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusQueued,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	if u.queue != nil {
		if err := u.queue.EnqueueProcess(ctx, created.ID, userID, created.Title); err != nil {
			u.logger.ErrorContext(ctx, "enqueue process task", "job_id", created.ID, "error", err)
		}
	}

	return created, nil
}

func (u *JobUsecase) List(ctx context.Context, userID int64) ([]*domain.Job, error) {
	jobs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (u *JobUsecase) Get(ctx context.Context, userID, jobID int64) (*domain.Job, error) {
	job, err := u.repo.GetByID(ctx, jobID, userID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) Update(ctx context.Context, userID, jobID int64, patch domain.JobPatch) (*domain.Job, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.ErrTitleRequired
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	job, err := u.repo.Update(ctx, jobID, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) SetStatus(ctx context.Context, userID, jobID int64, status domain.Status) (*domain.Job, error) {
	// Reject before touching storage so a bad value leaves the row as is.
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	job, err := u.repo.SetStatus(ctx, jobID, userID, status)
	if err != nil {
		return nil, fmt.Errorf("set job status: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) Delete(ctx context.Context, userID, jobID int64) error {
	if err := u.repo.Delete(ctx, jobID, userID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// DeleteAll removes every job the caller owns. Zero deletions is a normal
// outcome, not an error.
func (u *JobUsecase) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	count, err := u.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all jobs: %w", err)
	}
	return count, nil
}
