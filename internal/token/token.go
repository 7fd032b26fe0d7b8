// Package token issues and validates the stateless bearer tokens that back
// authentication. A token is a pure claim of (user id, expiry) under an
// HMAC signature; there is no server-side session behind it and therefore
// no way to revoke one before its natural expiry. Password changes do not
// invalidate tokens already in flight — accepted behavior, not a bug.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medetbek/taskqueue/internal/domain"
)

const DefaultTTL = 60 * time.Minute

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a token asserting userID until now+ttl.
func (s *Service) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry and returns the subject user
// id. Every failure mode collapses to ErrTokenInvalid so callers surface a
// uniform 401.
func (s *Service) Validate(raw string) (int64, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrTokenInvalid
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrTokenInvalid
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrTokenInvalid
	}
	return userID, nil
}
