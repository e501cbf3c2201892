package service

import (
	"time"

	"postboard/internal/domain/entity"
	"postboard/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and wrong token types.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims defines the custom claims for the JWT tokens.
// Refresh tokens carry a random ID (jti) so two tokens minted in the same second differ.
type Claims struct {
	UserID uuid.UUID `json:"_id"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed access/refresh token pairs.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID) (*entity.TokenPair, error)

	// ValidateToken verifies signature, expiry and token type.
	ValidateToken(tokenString, tokenType string) (*Claims, error)

	// DecodeToken extracts claims without checking the signature or expiry.
	// The identity it returns must not be trusted for authorization.
	DecodeToken(tokenString string) (*Claims, error)

	// HashToken returns the digest under which a refresh token is stored.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
