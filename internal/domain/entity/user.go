// Package entity contains the core business objects of postboard,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account able to author posts and comments.
// Its currently valid refresh tokens live in the session store as RefreshToken rows.
type User struct {
	ID           uuid.UUID // Assigned at creation, immutable.
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, never the plaintext.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
