package entity

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEventType classifies audit events raised by the session lifecycle.
type SecurityEventType string

const (
	// SecurityEventRefreshTokenReuse is raised when a rotated or revoked refresh token is presented again.
	SecurityEventRefreshTokenReuse SecurityEventType = "refresh_token_reuse"
	// SecurityEventLogoutAll is raised when a user revokes every session.
	SecurityEventLogoutAll SecurityEventType = "logout_all"
)

// SecurityEvent is the audit record persisted by the audit worker.
type SecurityEvent struct {
	ID              uuid.UUID
	Type            SecurityEventType
	UserID          uuid.UUID
	RevokedSessions int64
	RequestID       string
	OccurredAt      time.Time
	ReceivedAt      time.Time
}
