// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput identifies the account by both username and email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// RefreshInput carries the refresh token being rotated.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token being revoked.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// SessionInfo describes one active session without exposing the token.
type SessionInfo struct {
	ID        uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthUsecase is the session lifecycle: issuing, rotating and revoking refresh tokens.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.TokenPair, error)
	Login(ctx context.Context, input *LoginInput) (*entity.TokenPair, error)
	// Refresh rotates a refresh token. Presenting a token that verifies but is no longer stored
	// revokes every session of its owner.
	Refresh(ctx context.Context, input *RefreshInput) (*entity.TokenPair, error)
	Logout(ctx context.Context, input *LogoutInput) error
	LogoutAll(ctx context.Context, userID uuid.UUID) (int64, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]*SessionInfo, error)
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
