package impl

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"postboard/internal/domain/entity"
	"postboard/internal/domain/service"
	"postboard/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_MissingFields(t *testing.T) {
	fixture := newAuthFixture(t)

	for mask := 0; mask < 7; mask++ {
		input := &usecase.RegisterInput{}
		if mask&1 != 0 {
			input.Username = "alice"
		}
		if mask&2 != 0 {
			input.Email = "alice@example.com"
		}
		if mask&4 != 0 {
			input.Password = "s3cret"
		}

		_, err := fixture.service.Register(context.Background(), input)
		requireAppError(t, err, http.StatusBadRequest, "Username, email and password are required")
	}
}

func TestAuthService_Register_WhitespacePasswordIsAPassword(t *testing.T) {
	fixture := newAuthFixture(t)
	input := &usecase.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "   "}

	_, err := fixture.service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &usecase.LoginInput{
		Username: "alice", Email: "alice@example.com", Password: "   ",
	})
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &usecase.LoginInput{
		Username: "alice", Email: "alice@example.com", Password: " ",
	})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid password")
}

func TestAuthService_Register_StoresRefreshToken(t *testing.T) {
	fixture := newAuthFixture(t)

	userID, pair := fixture.register(t)

	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, []string{fixture.tokens.HashToken(pair.RefreshToken)}, fixture.store.storedHashes(userID))

	claims, err := fixture.tokens.ValidateToken(pair.RefreshToken, service.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret",
	})
	requireAppError(t, err, http.StatusConflict, "")
}

func TestAuthService_Login_SessionsAreAdditive(t *testing.T) {
	fixture := newAuthFixture(t)
	userID, registered := fixture.register(t)

	loggedIn, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.NotEqual(t, registered.RefreshToken, loggedIn.RefreshToken)
	assert.ElementsMatch(t, []string{
		fixture.tokens.HashToken(registered.RefreshToken),
		fixture.tokens.HashToken(loggedIn.RefreshToken),
	}, fixture.store.storedHashes(userID))
}

func TestAuthService_Login_Failures(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	tests := []struct {
		name    string
		input   *usecase.LoginInput
		status  int
		message string
	}{
		{
			name:    "missing password",
			input:   &usecase.LoginInput{Username: "alice", Email: "alice@example.com"},
			status:  http.StatusBadRequest,
			message: "Username, email and password are required",
		},
		{
			name:    "unknown username",
			input:   &usecase.LoginInput{Username: "bob", Email: "alice@example.com", Password: "s3cret"},
			status:  http.StatusUnauthorized,
			message: "Invalid username or email",
		},
		{
			name:    "email of another account",
			input:   &usecase.LoginInput{Username: "alice", Email: "bob@example.com", Password: "s3cret"},
			status:  http.StatusUnauthorized,
			message: "Invalid username or email",
		},
		{
			name:    "wrong password",
			input:   &usecase.LoginInput{Username: "alice", Email: "alice@example.com", Password: "nope"},
			status:  http.StatusUnauthorized,
			message: "Invalid password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Login(context.Background(), tt.input)
			requireAppError(t, err, tt.status, tt.message)
		})
	}
}

func TestAuthService_Refresh_RotatesAndIsSingleUse(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, first := fixture.register(t)

	second, err := fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, []string{fixture.tokens.HashToken(second.RefreshToken)}, fixture.store.storedHashes(userID))

	_, err = fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestAuthService_Refresh_ReplayRevokesEverySession(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, tokenA := fixture.register(t)

	// A second, unrelated session that must also be revoked.
	_, err := fixture.service.Login(ctx, &usecase.LoginInput{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	tokenB, err := fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: tokenA.RefreshToken})
	require.NoError(t, err)

	_, err = fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: tokenA.RefreshToken})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")
	assert.Empty(t, fixture.store.storedHashes(userID))

	_, err = fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: tokenB.RefreshToken})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")

	events := fixture.publisher.published()
	require.NotEmpty(t, events)
	assert.Equal(t, string(entity.SecurityEventRefreshTokenReuse), events[0].Type)
	assert.Equal(t, userID.String(), events[0].UserID)
	assert.Equal(t, int64(2), events[0].RevokedSessions)
}

func TestAuthService_Refresh_ConcurrentRotationHasOneWinner(t *testing.T) {
	fixture := newAuthFixture(t)
	_, pair := fixture.register(t)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fixture.service.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: pair.RefreshToken})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	fixture := newAuthFixture(t)
	_, pair := fixture.register(t)

	orphan, err := fixture.tokens.GenerateTokens(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		status  int
		message string
	}{
		{name: "missing", token: "", status: http.StatusBadRequest, message: "Refresh token is required"},
		{name: "garbage", token: "not-a-jwt", status: http.StatusUnauthorized, message: "Invalid refresh token"},
		{name: "access token", token: pair.AccessToken, status: http.StatusUnauthorized, message: "Invalid refresh token"},
		{name: "unknown user", token: orphan.RefreshToken, status: http.StatusUnauthorized, message: "Invalid refresh token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: tt.token})
			requireAppError(t, err, tt.status, tt.message)
		})
	}
}

func TestAuthService_Logout_RemovesOnlyThatToken(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, first := fixture.register(t)

	second, err := fixture.service.Login(ctx, &usecase.LoginInput{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: first.RefreshToken}))
	assert.Equal(t, []string{fixture.tokens.HashToken(second.RefreshToken)}, fixture.store.storedHashes(userID))

	// Logging out again is a no-op.
	require.NoError(t, fixture.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: first.RefreshToken}))

	_, err = fixture.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestAuthService_Logout_AcceptsExpiredToken(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, _ := fixture.register(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		UserID: userID,
		Type:   service.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	hash := fixture.tokens.HashToken(expired)
	require.NoError(t, fixture.store.AddRefreshToken(ctx, &entity.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	require.NoError(t, fixture.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: expired}))
	assert.NotContains(t, fixture.store.storedHashes(userID), hash)
}

func TestAuthService_Logout_Rejections(t *testing.T) {
	fixture := newAuthFixture(t)

	orphan, err := fixture.tokens.GenerateTokens(uuid.New())
	require.NoError(t, err)

	err = fixture.service.Logout(context.Background(), &usecase.LogoutInput{})
	requireAppError(t, err, http.StatusBadRequest, "Refresh token is required")

	err = fixture.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "not-a-jwt"})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")

	err = fixture.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: orphan.RefreshToken})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid refresh token")
}

func TestAuthService_LogoutAll(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, _ := fixture.register(t)
	_, err := fixture.service.Login(ctx, &usecase.LoginInput{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	sessions, err := fixture.service.ListSessions(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	revoked, err := fixture.service.LogoutAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)
	assert.Empty(t, fixture.store.storedHashes(userID))

	events := fixture.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, string(entity.SecurityEventLogoutAll), events[0].Type)
}

func TestAuthService_PublishFailureDoesNotChangeOutcome(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.publisher.err = assert.AnError
	userID, _ := fixture.register(t)

	revoked, err := fixture.service.LogoutAll(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), revoked)
}

func TestAuthService_CleanupExpiredSessions(t *testing.T) {
	fixture := newAuthFixture(t)
	ctx := context.Background()
	userID, pair := fixture.register(t)

	require.NoError(t, fixture.store.AddRefreshToken(ctx, &entity.RefreshToken{
		UserID:    userID,
		TokenHash: "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	deleted, err := fixture.service.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, []string{fixture.tokens.HashToken(pair.RefreshToken)}, fixture.store.storedHashes(userID))
}
