package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Email        string
	Mobile       *string // nil means not provided
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the profile fields a user may change. A nil field is
// left untouched. The password hash and id are deliberately not patchable
// through this path.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Mobile    *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil &&
		p.Email == nil && p.Mobile == nil
}
