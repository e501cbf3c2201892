package database

import (
	"context"

	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"
	"postboard/internal/errors"
	"postboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type securityEventRepository struct {
	db *gorm.DB
}

// NewSecurityEventRepository is the constructor for the audit trail store.
func NewSecurityEventRepository(db *gorm.DB) repository.SecurityEventRepository {
	return &securityEventRepository{db: db}
}

// Create records the event once; a second delivery of the same event ID is reported as ErrSecurityEventExists.
func (repo *securityEventRepository) Create(ctx context.Context, event *entity.SecurityEvent) error {
	if err := repo.db.WithContext(ctx).Create(fromSecurityEventDomain(event)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrSecurityEventExists)
		}

		return errors.Wrap(err, "failed to record security event")
	}

	return nil
}

func (repo *securityEventRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SecurityEvent, error) {
	var eventsM []*model.SecurityEventModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("occurred_at").Find(&eventsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find security events")
	}

	events := make([]*entity.SecurityEvent, 0, len(eventsM))
	for _, eventM := range eventsM {
		events = append(events, &entity.SecurityEvent{
			ID:              eventM.ID,
			Type:            entity.SecurityEventType(eventM.Type),
			UserID:          eventM.UserID,
			RevokedSessions: eventM.RevokedSessions,
			RequestID:       eventM.RequestID,
			OccurredAt:      eventM.OccurredAt,
			ReceivedAt:      eventM.ReceivedAt,
		})
	}

	return events, nil
}

func fromSecurityEventDomain(event *entity.SecurityEvent) *model.SecurityEventModel {
	return &model.SecurityEventModel{
		ID:              event.ID,
		Type:            string(event.Type),
		UserID:          event.UserID,
		RevokedSessions: event.RevokedSessions,
		RequestID:       event.RequestID,
		OccurredAt:      event.OccurredAt.UTC(),
		ReceivedAt:      event.ReceivedAt.UTC(),
	}
}
