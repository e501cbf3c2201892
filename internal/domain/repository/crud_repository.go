package repository

import (
	"context"

	"postboard/internal/domain/entity"
	"postboard/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrRecordNotFound is returned when no record has the requested ID.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownField is returned when a filter or change names a field the resource does not expose.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidFieldValue is returned when a value cannot be stored in the named field, e.g. a malformed ID.
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// Fields maps API field names (e.g. "senderID") to values.
// It is used both as an exact-match filter and as a set of changes.
type Fields map[string]any

// CrudRepository is the generic create/read/update/delete capability over one resource type.
type CrudRepository[T any] interface {
	Find(ctx context.Context, filter Fields) ([]*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, record *T) error
	// FindByIDAndUpdate applies changes and returns the updated record.
	FindByIDAndUpdate(ctx context.Context, id uuid.UUID, changes Fields) (*T, error)
	// FindByIDAndDelete removes the record and returns it as it was.
	FindByIDAndDelete(ctx context.Context, id uuid.UUID) (*T, error)
}

// PostRepository persists posts.
type PostRepository = CrudRepository[entity.Post]

// CommentRepository persists comments.
type CommentRepository = CrudRepository[entity.Comment]
