package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/errors"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var knownSecurityEvents = map[entity.SecurityEventType]struct{}{
	entity.SecurityEventRefreshTokenReuse: {},
	entity.SecurityEventLogoutAll:         {},
}

type auditService struct {
	eventRepo repository.SecurityEventRepository
	logger    *slog.Logger
}

// AuditServiceParams holds dependencies for AuditService, injected by Fx.
type AuditServiceParams struct {
	fx.In

	EventRepo repository.SecurityEventRepository
	Logger    *slog.Logger
}

// NewAuditService is the constructor for auditService.
func NewAuditService(params AuditServiceParams) usecase.AuditUsecase {
	return &auditService{
		eventRepo: params.EventRepo,
		logger:    params.Logger,
	}
}

func (srv *auditService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// RecordSecurityEvent validates and stores the event. Malformed events are a validation error,
// store failures an internal one.
func (srv *auditService) RecordSecurityEvent(ctx context.Context, msg *service.SecurityEventMessage) error {
	event, err := toSecurityEvent(msg)
	if err != nil {
		return err
	}

	if err := srv.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, repository.ErrSecurityEventExists) {
			srv.log(ctx).Debug("Security event already recorded", slog.Any("event_id", event.ID))

			return nil
		}

		return domainerrors.NewInternalError(err, "failed to record security event")
	}

	srv.log(ctx).Info("Security event recorded",
		slog.Any("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.Any("user_id", event.UserID),
		slog.Int64("revoked_sessions", event.RevokedSessions),
	)

	return nil
}

func toSecurityEvent(msg *service.SecurityEventMessage) (*entity.SecurityEvent, error) {
	eventID, err := uuid.Parse(msg.EventID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("event_id must be a UUID")
	}
	userID, err := uuid.Parse(msg.UserID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("user_id must be a UUID")
	}
	eventType := entity.SecurityEventType(msg.Type)
	if _, ok := knownSecurityEvents[eventType]; !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown event type " + msg.Type)
	}

	occurredAt := msg.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &entity.SecurityEvent{
		ID:              eventID,
		Type:            eventType,
		UserID:          userID,
		RevokedSessions: msg.RevokedSessions,
		RequestID:       msg.RequestID,
		OccurredAt:      occurredAt,
		ReceivedAt:      time.Now(),
	}, nil
}
