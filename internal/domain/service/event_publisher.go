package service

import (
	"context"
	"time"
)

// SecurityEventMessage is the wire form of an audit event handed to the message queue.
type SecurityEventMessage struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	UserID          string    `json:"user_id"`
	RevokedSessions int64     `json:"revoked_sessions"`
	RequestID       string    `json:"request_id,omitempty"` // For distributed tracing
	OccurredAt      time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishSecurityEvent publishes an audit event for asynchronous processing.
	PublishSecurityEvent(ctx context.Context, event *SecurityEventMessage) error

	// Close releases any resources held by the publisher
	Close() error
}
