package repository

import (
	"context"

	"github.com/medetbek/taskqueue/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
