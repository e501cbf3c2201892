package model

import (
	"time"

	"github.com/google/uuid"
)

// SecurityEventModel mirrors the 'security_events' audit table. ID is the publisher's event ID,
// which makes redelivered messages collide on the primary key.
type SecurityEventModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type            string    `gorm:"type:varchar(64);not null"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RevokedSessions int64     `gorm:"not null;default:0"`
	RequestID       string    `gorm:"type:varchar(64)"`
	OccurredAt      time.Time `gorm:"not null;index"`
	ReceivedAt      time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SecurityEventModel) TableName() string {
	return "security_events"
}
