package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "postboard/internal/delivery/context"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	userIDKey    = "userID"
	bearerScheme = "Bearer"
)

var (
	errMissingAuthHeader = domainerrors.ErrUnauthorized.WithMessage("Unauthorized: missing or invalid Authorization header")
	errMissingToken      = domainerrors.ErrUnauthorized.WithMessage("Unauthorized: missing token")
	errInvalidToken      = domainerrors.ErrUnauthorized.WithMessage("Unauthorized: invalid or expired token")
)

// AuthMiddleware is the authorization gate in front of protected routes.
// It trusts the access token signature and performs no store lookup.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and records the caller's ID.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scheme, token, _ := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if scheme != bearerScheme {
			return errMissingAuthHeader
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return errMissingToken
		}

		claims, err := m.tokenSvc.ValidateToken(token, service.TokenTypeAccess)
		if err != nil || claims.UserID == uuid.Nil {
			deliverycontext.Logger(c.Request().Context(), m.logger).
				Debug("Access token rejected", slog.Any("error", err))

			return errInvalidToken
		}

		c.Set(userIDKey, claims.UserID)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithUserID(c.Request().Context(), claims.UserID)))

		return next(c)
	}
}

// GetUserID returns the caller identified by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDKey).(uuid.UUID)

	return userID, ok
}
