package usecase

import (
	"context"

	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"

	"github.com/google/uuid"
)

// ResourceUsecase is CRUD over an owned resource with the ownership policy applied to mutations.
// callerID is the authenticated identity; uuid.Nil means anonymous.
type ResourceUsecase[T any] interface {
	List(ctx context.Context, filter repository.Fields) ([]*T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	// Create forces the owner field to callerID whatever the record carried.
	Create(ctx context.Context, callerID uuid.UUID, record *T) (*T, error)
	// Update rejects owner changes and callers other than the owner.
	Update(ctx context.Context, callerID, id uuid.UUID, changes repository.Fields) (*T, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) (*T, error)
}

// PostUsecase manages posts; the owner field is senderID.
type PostUsecase = ResourceUsecase[entity.Post]

// CommentUsecase manages comments; the owner field is userID.
type CommentUsecase = ResourceUsecase[entity.Comment]
