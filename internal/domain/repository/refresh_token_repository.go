package repository

import (
	"context"
	"time"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// RefreshTokenRepository stores the set of currently valid refresh tokens per user.
// A token hash that has been removed is never accepted again.
type RefreshTokenRepository interface {
	// AddRefreshToken appends a token to the user's set.
	AddRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// ConsumeRefreshToken atomically removes the token if present.
	// It reports false when the token was not in the set, which callers treat as a replay.
	ConsumeRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) (bool, error)

	// RevokeRefreshToken removes the token; absent tokens are a no-op.
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) error

	// RevokeAllRefreshTokens clears the user's set and reports how many sessions were removed.
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListRefreshTokens returns the user's unexpired sessions, newest first.
	ListRefreshTokens(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// DeleteExpiredRefreshTokens removes every token that expired before now.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
