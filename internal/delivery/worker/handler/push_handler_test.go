package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postboard/config"
	"postboard/internal/domain/constants"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/service"
	"postboard/internal/errors"
	"postboard/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type auditFunc func(ctx context.Context, event *service.SecurityEventMessage) error

func (f auditFunc) RecordSecurityEvent(ctx context.Context, event *service.SecurityEventMessage) error {
	return f(ctx, event)
}

func newTestPushHandler(record auditFunc) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:       &config.Config{},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuditUsecase: record,
	})
}

func pushRequest(t *testing.T, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func testEvent() *service.SecurityEventMessage {
	return &service.SecurityEventMessage{
		EventID:         uuid.NewString(),
		Type:            "logout_all",
		UserID:          uuid.NewString(),
		RevokedSessions: 2,
		RequestID:       "req-42",
		OccurredAt:      time.Now().UTC(),
	}
}

func TestPushHandler_HandlePush(t *testing.T) {
	event := testEvent()
	msg, err := pubsub.NewPushMessage(event, "projects/p/subscriptions/audit")
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       any
		recordErr  error
		wantStatus int
		wantCalled bool
	}{
		{name: "recorded", body: msg, wantStatus: http.StatusOK, wantCalled: true},
		{
			name:       "rejected event",
			body:       msg,
			recordErr:  domainerrors.ErrValidationFailed.WithDetails("unknown event type"),
			wantStatus: http.StatusBadRequest,
			wantCalled: true,
		},
		{
			name:       "store failure is retried",
			body:       msg,
			recordErr:  domainerrors.NewInternalError(errors.New("db down"), "failed to record security event"),
			wantStatus: http.StatusServiceUnavailable,
			wantCalled: true,
		},
		{
			name:       "undecodable data",
			body:       map[string]any{"message": map[string]any{"data": "%%%", "messageId": "1"}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := newTestPushHandler(func(ctx context.Context, got *service.SecurityEventMessage) error {
				called = true
				assert.Equal(t, event.EventID, got.EventID)
				assert.Equal(t, event.RequestID, got.RequestID)

				return tt.recordErr
			})

			c, rec := pushRequest(t, tt.body)
			require.NoError(t, h.HandlePush(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestPushHandler_VerifiesPushAuth(t *testing.T) {
	event := testEvent()
	msg, err := pubsub.NewPushMessage(event, "projects/p/subscriptions/audit")
	require.NoError(t, err)

	h := NewPushHandler(PushHandlerParams{
		Config: &config.Config{
			PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle},
			Worker: &config.WorkerConfig{VerifyPushAuth: true},
		},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuditUsecase: auditFunc(func(context.Context, *service.SecurityEventMessage) error { return nil }),
	})
	require.True(t, h.verifyPushAuth)

	var audience string
	h.validateToken = func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		audience = aud
		if token != "google-signed" {
			return nil, errors.New("bad token")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}

	c, rec := pushRequest(t, msg)
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = pushRequest(t, msg)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer forged")
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = pushRequest(t, msg)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer google-signed")
	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com/push", audience)
}

func TestNewPushHandler_LocalProviderSkipsAuth(t *testing.T) {
	h := NewPushHandler(PushHandlerParams{
		Config: &config.Config{
			PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal},
			Worker: &config.WorkerConfig{VerifyPushAuth: true},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	assert.False(t, h.verifyPushAuth)
}
