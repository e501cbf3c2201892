package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one currently valid session of a user.
// Only the SHA-256 hash of the token string is kept; removing the row revokes the token for good.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is what register, login and refresh hand back to the caller.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
