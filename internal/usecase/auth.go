package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/email"
	"github.com/medetbek/taskqueue/internal/repository"
	"github.com/medetbek/taskqueue/internal/token"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Service
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Service, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Mobile    *string
	Password  string
}

// Register stores a new user with a bcrypt-hashed password. The raw
// password never leaves this function and the hash is never logged.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Best effort — a failed welcome email must not fail registration.
	subject := "Welcome to Task Queue Manager"
	body := fmt.Sprintf("<p>Hi %s, your account is ready.</p>", created.FirstName)
	if err := u.email.Send(ctx, created.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return created, nil
}

// Login verifies the credentials and returns the user plus a fresh bearer
// token. Unknown email and wrong password are both ErrInvalidCredentials;
// the comparison goes through bcrypt, never plain string equality.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the patch fields that are present and leaves the
// rest untouched. The password hash is not reachable through this path.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := u.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword re-hashes after verifying the old password. Tokens issued
// before the change stay valid until they expire; see the token package.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("store password hash: %w", err)
	}
	return nil
}
