// Package tasks is the simulated background processing pipeline. Jobs get a
// placeholder task pushed onto a redis list when they are created; a worker
// drains the list and pretends to process them. Nothing here writes back to
// the job records — the queue exists beside the job lifecycle, not in it.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/taskqueue/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const KindProcess = "process"

type Task struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	JobID      int64     `json:"job_id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Queue is a redis-list-backed task queue (LPUSH producer, BRPOP consumer).
type Queue struct {
	rdb *redis.Client
	key string
}

func NewQueue(redisURL, key string) (*Queue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Queue{rdb: redis.NewClient(opts), key: key}, nil
}

func (q *Queue) EnqueueProcess(ctx context.Context, jobID, userID int64, title string) error {
	task := Task{
		ID:         uuid.NewString(),
		Kind:       KindProcess,
		JobID:      jobID,
		UserID:     userID,
		Title:      title,
		EnqueuedAt: time.Now(),
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	metrics.TasksEnqueuedTotal.Inc()
	return nil
}

// Dequeue blocks up to timeout for the next task. Returns (nil, nil) when
// the queue stayed empty for the whole window.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}
	// BRPOP returns [key, value].
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &task, nil
}

// Ping satisfies health.Pinger.
func (q *Queue) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}

func (q *Queue) Close() error {
	return q.rdb.Close()
}
