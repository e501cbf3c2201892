package usecase

import (
	"context"

	"postboard/internal/domain/service"
)

// AuditUsecase persists security events delivered to the audit worker.
type AuditUsecase interface {
	// RecordSecurityEvent stores the event. Redelivery of an already recorded event succeeds without a second row.
	RecordSecurityEvent(ctx context.Context, event *service.SecurityEventMessage) error
}
