// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"postboard/config"
	"postboard/internal/domain/entity"
	"postboard/internal/domain/service"
	"postboard/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService signs both token types with one process-wide HMAC secret.
type jwtService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService builds the token service from configuration.
// An empty secret is a startup error; there is no fallback secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), time.Now), nil
}

func newJWTService(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}
}

// GenerateTokens creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokens(userID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := s.generateToken(userID, service.TokenTypeAccess, s.accessTTL, "")
	if err != nil {
		return nil, err
	}

	// The jti nonce keeps refresh tokens unique even when issued in the same second.
	refreshToken, err := s.generateToken(userID, service.TokenTypeRefresh, s.refreshTTL, uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken checks signature, expiry and the "type" claim.
func (s *jwtService) ValidateToken(tokenString, tokenType string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.WithMessage(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.WithMessage(service.ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, service.ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, errors.WithMessage(service.ErrInvalidToken, "unexpected token type "+claims.Type)
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.WithMessage(service.ErrInvalidToken, "missing subject")
	}

	return claims, nil
}

// DecodeToken reads the claims without verifying anything.
func (s *jwtService) DecodeToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.WithMessage(service.ErrInvalidToken, err.Error())
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.WithMessage(service.ErrInvalidToken, "missing subject")
	}

	return claims, nil
}

// HashToken returns the hex SHA-256 digest stored in place of the raw token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// GetRefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) generateToken(userID uuid.UUID, tokenType string, ttl time.Duration, jti string) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrapf(err, "failed to sign %s token", tokenType)
	}

	return signed, nil
}
