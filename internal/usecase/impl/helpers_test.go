package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"postboard/config"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/errors"
	"postboard/internal/infra/auth"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_secret_key_very_long_for_testing"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           testSecret,
			ExpiresIn:        3600,
			RefreshExpiresIn: 1440,
		},
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
}

// requireAppError asserts err carries an AppError with the given status and message.
func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, status, appErr.HTTPCode())
	if message != "" {
		require.Equal(t, message, appErr.Message())
	}
}

// memoryStore is an in-memory credential store. It acts as its own transaction manager
// and repository factory; transactions are not isolated.
type memoryStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	tokens map[uuid.UUID]map[string]*entity.RefreshToken
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[uuid.UUID]*entity.User),
		tokens: make(map[uuid.UUID]map[string]*entity.RefreshToken),
	}
}

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memoryStore) UserRepo() repository.UserRepository { return s }

func (s *memoryStore) RefreshTokenRepo() repository.RefreshTokenRepository { return s }

func (s *memoryStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	stored := *user
	s.users[user.ID] = &stored

	return nil
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user

	return &found, nil
}

func (s *memoryStore) FindByCredentials(_ context.Context, username, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username && user.Email == email {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *memoryStore) AddRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens[token.UserID] == nil {
		s.tokens[token.UserID] = make(map[string]*entity.RefreshToken)
	}
	stored := *token
	stored.CreatedAt = time.Now()
	s.tokens[token.UserID][token.TokenHash] = &stored

	return nil
}

func (s *memoryStore) ConsumeRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[userID][tokenHash]; !ok {
		return false, nil
	}
	delete(s.tokens[userID], tokenHash)

	return true, nil
}

func (s *memoryStore) RevokeRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens[userID], tokenHash)

	return nil
}

func (s *memoryStore) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	revoked := int64(len(s.tokens[userID]))
	delete(s.tokens, userID)

	return revoked, nil
}

func (s *memoryStore) ListRefreshTokens(_ context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tokens []*entity.RefreshToken
	for _, token := range s.tokens[userID] {
		if token.ExpiresAt.After(time.Now()) {
			listed := *token
			tokens = append(tokens, &listed)
		}
	}

	return tokens, nil
}

func (s *memoryStore) DeleteExpiredRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, tokens := range s.tokens {
		for hash, token := range tokens {
			if !token.ExpiresAt.After(now) {
				delete(tokens, hash)
				deleted++
			}
		}
	}

	return deleted, nil
}

// storedHashes returns the refresh token hashes currently held for userID.
func (s *memoryStore) storedHashes(userID uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	hashes := make([]string, 0, len(s.tokens[userID]))
	for hash := range s.tokens[userID] {
		hashes = append(hashes, hash)
	}

	return hashes
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.SecurityEventMessage
	err    error
}

func (p *recordingPublisher) PublishSecurityEvent(_ context.Context, event *service.SecurityEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []*service.SecurityEventMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.SecurityEventMessage(nil), p.events...)
}

type authFixture struct {
	service   usecase.AuthUsecase
	store     *memoryStore
	tokens    service.TokenService
	publisher *recordingPublisher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := newMemoryStore()
	publisher := &recordingPublisher{}

	return &authFixture{
		service: NewAuthService(AuthServiceParams{
			TxManager:        store,
			UserRepo:         store,
			RefreshTokenRepo: store,
			Hasher:           auth.NewBcryptHasher(cfg),
			TokenService:     tokens,
			Publisher:        publisher,
			Logger:           newDiscardLogger(),
		}),
		store:     store,
		tokens:    tokens,
		publisher: publisher,
	}
}

// register creates alice and returns her ID and first token pair.
func (f *authFixture) register(t *testing.T) (uuid.UUID, *entity.TokenPair) {
	t.Helper()

	pair, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	claims, err := f.tokens.ValidateToken(pair.AccessToken, service.TokenTypeAccess)
	require.NoError(t, err)

	return claims.UserID, pair
}
