// Package impl contains the implementation of the application's business logic.
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

var (
	errCredentialsRequired  = domainerrors.ErrValidationFailed.WithMessage("Username, email and password are required")
	errRefreshTokenRequired = domainerrors.ErrValidationFailed.WithMessage("Refresh token is required")
	errUnknownUser          = domainerrors.ErrInvalidCredentials.WithMessage("Invalid username or email")
	errWrongPassword        = domainerrors.ErrInvalidCredentials.WithMessage("Invalid password")

	// errTokenReplayed aborts the rotation transaction; it never leaves the service.
	errTokenReplayed = errors.New("refresh token replayed")
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	publisher        service.EventPublisher
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Publisher        service.EventPublisher
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		publisher:        params.Publisher,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Register creates the account and its first session in one transaction.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.TokenPair, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errCredentialsRequired
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	var pair *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		var issueErr error
		pair, issueErr = srv.issueSession(ctx, repoFactory.RefreshTokenRepo(), user.ID)

		return issueErr
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration rejected, user exists", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "register")
		}
		srv.log(ctx).Error("Registration failed", slog.Any("error", err))

		return nil, domainerrors.NewInternalError(err, "failed to register user")
	}
	srv.log(ctx).Info("User registered", slog.Any("user_id", user.ID))

	return pair, nil
}

// Login opens an additional session; earlier sessions stay valid.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.TokenPair, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errCredentialsRequired
	}

	user, err := srv.userRepo.FindByCredentials(ctx, input.Username, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, unknown user", slog.String("username", input.Username))

			return nil, errors.Wrap(errUnknownUser, "login")
		}
		srv.log(ctx).Error("Login lookup failed", slog.Any("error", err))

		return nil, domainerrors.NewInternalError(err, "failed to find user")
	}

	// bcrypt is CPU-bound; keep it out of any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed, wrong password", slog.Any("user_id", user.ID))

		return nil, errors.Wrap(errWrongPassword, "login")
	}

	pair, err := srv.issueSession(ctx, srv.refreshTokenRepo, user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to open session", slog.Any("error", err), slog.Any("user_id", user.ID))

		return nil, domainerrors.NewInternalError(err, "failed to open session")
	}
	srv.log(ctx).Debug("User logged in", slog.Any("user_id", user.ID))

	return pair, nil
}

// Refresh consumes the presented token and issues a new pair. Every failure is reported as an invalid token.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*entity.TokenPair, error) {
	if input.RefreshToken == "" {
		return nil, errRefreshTokenRequired
	}

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken, service.TokenTypeRefresh)
	if err != nil {
		srv.log(ctx).Debug("Refresh token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	var pair *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindByID(ctx, claims.UserID); err != nil {
			return err
		}

		refreshRepo := repoFactory.RefreshTokenRepo()
		consumed, err := refreshRepo.ConsumeRefreshToken(ctx, claims.UserID, tokenHash)
		if err != nil {
			return err
		}
		if !consumed {
			return errTokenReplayed
		}

		pair, err = srv.issueSession(ctx, refreshRepo, claims.UserID)

		return err
	})

	switch {
	case err == nil:
		return pair, nil
	case errors.Is(err, errTokenReplayed):
		srv.revokeAfterReplay(ctx, claims.UserID)
	case errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Warn("Refresh token for unknown user", slog.Any("user_id", claims.UserID))
	default:
		srv.log(ctx).Error("Refresh failed", slog.Any("error", err), slog.Any("user_id", claims.UserID))
	}

	return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh")
}

// revokeAfterReplay treats a verified but unknown refresh token as stolen and ends every session of its owner.
func (srv *authService) revokeAfterReplay(ctx context.Context, userID uuid.UUID) {
	revoked, err := srv.refreshTokenRepo.RevokeAllRefreshTokens(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to revoke sessions after refresh token reuse",
			slog.Any("error", err), slog.Any("user_id", userID))

		return
	}
	srv.log(ctx).Warn("Refresh token reuse detected, all sessions revoked",
		slog.Any("user_id", userID), slog.Int64("revoked", revoked))

	srv.publishSecurityEvent(ctx, entity.SecurityEventRefreshTokenReuse, userID, revoked)
}

// Logout revokes a single token. Expired tokens are accepted so a stale session can still be closed.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if input.RefreshToken == "" {
		return errRefreshTokenRequired
	}

	claims, err := srv.tokenService.DecodeToken(input.RefreshToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	if _, err := srv.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrInvalidToken, "logout")
		}
		srv.log(ctx).Error("Logout lookup failed", slog.Any("error", err))

		return domainerrors.NewInternalError(err, "failed to find user")
	}

	if err := srv.refreshTokenRepo.RevokeRefreshToken(ctx, claims.UserID, srv.tokenService.HashToken(input.RefreshToken)); err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Any("error", err))

		return domainerrors.NewInternalError(err, "failed to revoke refresh token")
	}
	srv.log(ctx).Debug("User logged out", slog.Any("user_id", claims.UserID))

	return nil
}

// LogoutAll revokes every session of the caller and reports how many were open.
func (srv *authService) LogoutAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	revoked, err := srv.refreshTokenRepo.RevokeAllRefreshTokens(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err), slog.Any("user_id", userID))

		return 0, domainerrors.NewInternalError(err, "failed to revoke all sessions")
	}
	srv.log(ctx).Info("Logged out from all devices", slog.Any("user_id", userID), slog.Int64("revoked", revoked))

	srv.publishSecurityEvent(ctx, entity.SecurityEventLogoutAll, userID, revoked)

	return revoked, nil
}

func (srv *authService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*usecase.SessionInfo, error) {
	tokens, err := srv.refreshTokenRepo.ListRefreshTokens(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to list sessions")
	}

	sessions := make([]*usecase.SessionInfo, 0, len(tokens))
	for _, token := range tokens {
		sessions = append(sessions, &usecase.SessionInfo{
			ID:        token.ID,
			CreatedAt: token.CreatedAt,
			ExpiresAt: token.ExpiresAt,
		})
	}

	return sessions, nil
}

// CleanupExpiredSessions removes refresh tokens past their expiry.
func (srv *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.refreshTokenRepo.DeleteExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to cleanup expired sessions")
	}
	if deleted > 0 {
		srv.log(ctx).Info("Expired sessions removed", slog.Int64("deleted", deleted))
	}

	return deleted, nil
}

// issueSession mints a pair and stores its refresh token through refreshRepo.
func (srv *authService) issueSession(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID) (*entity.TokenPair, error) {
	pair, err := srv.tokenService.GenerateTokens(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := refreshRepo.AddRefreshToken(ctx, &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(pair.RefreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return pair, nil
}

// publishSecurityEvent is best effort: the audit trail never changes the outcome of the request.
func (srv *authService) publishSecurityEvent(ctx context.Context, eventType entity.SecurityEventType, userID uuid.UUID, revoked int64) {
	event := &service.SecurityEventMessage{
		EventID:         uuid.NewString(),
		Type:            string(eventType),
		UserID:          userID.String(),
		RevokedSessions: revoked,
		RequestID:       deliverycontext.RequestID(ctx),
		OccurredAt:      time.Now().UTC(),
	}

	if err := srv.publisher.PublishSecurityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish security event",
			slog.Any("error", err),
			slog.String("type", event.Type),
			slog.String("event_id", event.EventID),
		)
	}
}
