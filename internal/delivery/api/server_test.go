package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postboard/config"
	apimiddleware "postboard/internal/delivery/api/middleware"
	"postboard/internal/delivery/api/router"
	"postboard/internal/delivery/api/router/handler"
	"postboard/internal/domain/service"
	"postboard/internal/infra/auth"
	"postboard/internal/infra/persistence/database"
	"postboard/internal/usecase/impl"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type discardPublisher struct{}

func (discardPublisher) PublishSecurityEvent(context.Context, *service.SecurityEventMessage) error {
	return nil
}

func (discardPublisher) Close() error { return nil }

// newTestAPI wires the real handlers, services and gorm repositories over in-memory SQLite.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	cfg := &config.Config{
		JWT:  config.JWTConfig{Secret: "api_test_secret_long_enough_for_hs256", ExpiresIn: 3600, RefreshExpiresIn: 1440},
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	postRepo := database.NewPostRepository(db)
	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:        database.NewTransactionManager(db),
		UserRepo:         database.NewUserRepository(db),
		RefreshTokenRepo: database.NewRefreshTokenRepository(db),
		Hasher:           auth.NewBcryptHasher(cfg),
		TokenService:     tokens,
		Publisher:        discardPublisher{},
		Logger:           log,
	})
	postUsecase := impl.NewPostService(impl.PostServiceParams{PostRepo: postRepo, Logger: log})
	commentUsecase := impl.NewCommentService(impl.CommentServiceParams{
		CommentRepo: database.NewCommentRepository(db),
		PostRepo:    postRepo,
		Logger:      log,
	})

	return newEcho(cfg, log, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUsecase: authUsecase}),
		PostHandler:    handler.NewPostHandler(handler.PostHandlerParams{PostUsecase: postUsecase}),
		CommentHandler: handler.NewCommentHandler(handler.CommentHandlerParams{CommentUsecase: commentUsecase}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens, log),
	})
}

func call(t *testing.T, e *echo.Echo, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

type tokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type errorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Details   any    `json:"details"`
	RequestID string `json:"request_id"`
}

type postBody struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	SenderID uuid.UUID `json:"senderID"`
}

func register(t *testing.T, e *echo.Echo, name string) tokenPair {
	t.Helper()

	rec := call(t, e, http.MethodPost, "/auth/register", map[string]string{
		"username": name, "email": name + "@example.com", "password": "s3cret",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[tokenPair](t, rec)
}

func TestAPI_Health(t *testing.T) {
	e := newTestAPI(t)

	rec := call(t, e, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	e := newTestAPI(t)

	pair := register(t, e, "alice")
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)

	rec := call(t, e, http.MethodPost, "/auth/register", map[string]string{"username": "bob", "email": "bob@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username, email and password are required", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodPost, "/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "other",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, e, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[tokenPair](t, rec)
	assert.NotEqual(t, pair.RefreshToken, login.RefreshToken)

	rec = call(t, e, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid password", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodGet, "/auth/sessions", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestAPI_RefreshRotationAndReplay(t *testing.T) {
	e := newTestAPI(t)
	first := register(t, e, "alice")

	rec := call(t, e, http.MethodPost, "/auth/refresh-token", map[string]string{"refreshToken": first.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[tokenPair](t, rec)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	rec = call(t, e, http.MethodPost, "/auth/refresh-token", map[string]string{"refreshToken": first.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid refresh token", decode[errorBody](t, rec).Message)

	// The replay revoked the rotated session too.
	rec = call(t, e, http.MethodPost, "/auth/refresh-token", map[string]string{"refreshToken": second.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, e, http.MethodGet, "/auth/sessions", nil, second.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = call(t, e, http.MethodPost, "/auth/refresh-token", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refresh token is required", decode[errorBody](t, rec).Message)
}

func TestAPI_LogoutAndLogoutAll(t *testing.T) {
	e := newTestAPI(t)
	pair := register(t, e, "alice")

	rec := call(t, e, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": pair.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())

	rec = call(t, e, http.MethodPost, "/auth/refresh-token", map[string]string{"refreshToken": pair.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, e, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": "not-a-jwt"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login := decode[tokenPair](t, call(t, e, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}, ""))
	call(t, e, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}, "")

	rec = call(t, e, http.MethodPost, "/auth/logout-all", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out from all devices","revoked":2}`, rec.Body.String())
}

func TestAPI_AuthorizationGate(t *testing.T) {
	e := newTestAPI(t)
	pair := register(t, e, "alice")

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "no header", header: "", message: "Unauthorized: missing or invalid Authorization header"},
		{name: "wrong scheme", header: "Basic abc", message: "Unauthorized: missing or invalid Authorization header"},
		{name: "empty token", header: "Bearer ", message: "Unauthorized: missing token"},
		{name: "garbage token", header: "Bearer abc.def.ghi", message: "Unauthorized: invalid or expired token"},
		{name: "refresh token", header: "Bearer " + pair.RefreshToken, message: "Unauthorized: invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/post", bytes.NewBufferString(`{"title":"t","body":"b"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, "UNAUTHORIZED", body.Code)
			assert.Nil(t, body.Details)
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, rec.Header().Get("X-Request-Id"), body.RequestID)
		})
	}
}

func TestAPI_PostOwnership(t *testing.T) {
	e := newTestAPI(t)
	alice := register(t, e, "alice")
	bob := register(t, e, "bob")
	forged := uuid.New()

	rec := call(t, e, http.MethodPost, "/post", map[string]any{
		"title": "hello", "body": "world", "senderID": forged,
	}, alice.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[postBody](t, rec)
	assert.NotEqual(t, forged, post.SenderID)
	assert.NotEqual(t, uuid.Nil, post.SenderID)

	rec = call(t, e, http.MethodPost, "/post", map[string]any{"title": "no body"}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body is required", decode[errorBody](t, rec).Details)

	path := "/post/" + post.ID.String()

	rec = call(t, e, http.MethodPut, path, map[string]any{"title": "mine now"}, bob.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to update this post", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodPut, path, map[string]any{"senderID": uuid.NewString()}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "senderID is immutable", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodPut, path, map[string]any{"title": "edited"}, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", decode[postBody](t, rec).Title)

	for name, title := range map[string]any{
		"null":     nil,
		"object":   map[string]any{"a": 1},
		"bool":     true,
		"empty":    "",
		"too long": strings.Repeat("x", 256),
	} {
		rec = call(t, e, http.MethodPut, path, map[string]any{"title": title}, alice.Token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Equal(t, "VALIDATION_FAILED", decode[errorBody](t, rec).Code, name)
	}

	rec = call(t, e, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "edited", decode[postBody](t, rec).Title)

	rec = call(t, e, http.MethodGet, "/post?senderID="+post.SenderID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]postBody](t, rec), 1)

	rec = call(t, e, http.MethodGet, "/post?colour=red", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotNil(t, decode[errorBody](t, rec).Details)

	rec = call(t, e, http.MethodDelete, path, nil, bob.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, e, http.MethodDelete, path, nil, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, post.ID, decode[postBody](t, rec).ID)

	rec = call(t, e, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodGet, "/post/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Comments(t *testing.T) {
	e := newTestAPI(t)
	alice := register(t, e, "alice")

	rec := call(t, e, http.MethodPost, "/comment", map[string]any{
		"postID": uuid.NewString(), "content": "orphan",
	}, alice.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode[errorBody](t, rec).Message)

	post := decode[postBody](t, call(t, e, http.MethodPost, "/post", map[string]any{"title": "t", "body": "b"}, alice.Token))

	rec = call(t, e, http.MethodPost, "/comment", map[string]any{
		"postID": post.ID, "content": "first",
	}, alice.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[map[string]any](t, rec)
	assert.Equal(t, post.SenderID.String(), comment["userID"])

	rec = call(t, e, http.MethodGet, "/comment?postID="+post.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = call(t, e, http.MethodPost, "/comment", map[string]any{"postID": "nope", "content": "x"}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := "/comment/" + comment["id"].(string)

	rec = call(t, e, http.MethodPut, path, map[string]any{"postID": uuid.NewString()}, alice.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decode[errorBody](t, rec).Message)

	rec = call(t, e, http.MethodPut, path, map[string]any{"content": ""}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, e, http.MethodPut, path, map[string]any{"content": nil}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	other := decode[postBody](t, call(t, e, http.MethodPost, "/post", map[string]any{"title": "t2", "body": "b2"}, alice.Token))
	rec = call(t, e, http.MethodPut, path, map[string]any{"postID": other.ID}, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, other.ID.String(), decode[map[string]any](t, rec)["postID"])

	rec = call(t, e, http.MethodGet, "/comment?postID="+post.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))
}
