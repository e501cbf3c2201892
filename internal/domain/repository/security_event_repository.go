package repository

import (
	"context"

	"postboard/internal/domain/entity"
	"postboard/internal/errors"

	"github.com/google/uuid"
)

// ErrSecurityEventExists is returned when an event with the same ID was already recorded.
var ErrSecurityEventExists = errors.New("security event already recorded")

// SecurityEventRepository is the audit trail written by the audit worker.
type SecurityEventRepository interface {
	Create(ctx context.Context, event *entity.SecurityEvent) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SecurityEvent, error)
}
