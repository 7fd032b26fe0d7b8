package repository

import (
	"context"
	"time"

	"github.com/medetbek/taskqueue/internal/domain"
)

// Usecases depend on this interface, not the postgres implementation, so
// tests can inject fakes and the storage engine stays swappable.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, jobID, userID int64) (*domain.Job, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Job, error)
	Update(ctx context.Context, jobID, userID int64, patch domain.JobPatch) (*domain.Job, error)
	SetStatus(ctx context.Context, jobID, userID int64, status domain.Status) (*domain.Job, error)
	Delete(ctx context.Context, jobID, userID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)

	// Janitor method — purges finished jobs past the retention window.
	DeleteDoneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
