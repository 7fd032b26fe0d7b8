package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medetbek/taskqueue/internal/domain"
)

const jobColumns = `id, user_id, title, description, status, created_at, updated_at`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `
		INSERT INTO jobs (user_id, title, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobColumns

	row := r.pool.QueryRow(ctx, query,
		job.UserID,
		job.Title,
		job.Description,
		job.Status,
	)
	return scanJob(row)
}

// Every read and write below filters on user_id as well as id, so a job
// owned by someone else is indistinguishable from a missing one.
func (r *JobRepository) GetByID(ctx context.Context, jobID, userID int64) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID)
	return scanJob(row)
}

func (r *JobRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, jobID, userID int64, patch domain.JobPatch) (*domain.Job, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{jobID, userID}

	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		strings.Join(set, ", "), jobColumns)

	return scanJob(r.pool.QueryRow(ctx, query, args...))
}

func (r *JobRepository) SetStatus(ctx context.Context, jobID, userID int64, status domain.Status) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET    status = $3, updated_at = NOW()
		WHERE  id = $1 AND user_id = $2
		RETURNING ` + jobColumns

	return scanJob(r.pool.QueryRow(ctx, query, jobID, userID, status))
}

func (r *JobRepository) Delete(ctx context.Context, jobID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND user_id = $2`, jobID, userID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *JobRepository) DeleteDoneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jobs WHERE status = $1 AND updated_at < $2`,
		domain.StatusDone, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete done jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Description, &j.Status,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
