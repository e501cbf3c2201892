package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "postboard/internal/delivery/context"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/errors"
	"postboard/internal/usecase"

	"github.com/google/uuid"
)

// Ownership describes how a resource type records its owner.
type Ownership[T any] struct {
	// Resource names the type in messages, e.g. "Post".
	Resource string
	// OwnerField is the API field holding the owner, e.g. "senderID".
	OwnerField string
	Owner      func(*T) uuid.UUID
	SetOwner   func(*T, uuid.UUID)
	// BeforeCreate runs after the owner is set and before the record is stored.
	BeforeCreate func(ctx context.Context, record *T) error
	// BeforeUpdate runs after the ownership checks and before the changes are stored.
	BeforeUpdate func(ctx context.Context, existing *T, changes repository.Fields) error
}

// ownedResourceService wraps a CrudRepository with the ownership policy.
type ownedResourceService[T any] struct {
	repo      repository.CrudRepository[T]
	ownership Ownership[T]
	logger    *slog.Logger
}

// NewOwnedResourceService composes generic CRUD with ownership checks on create, update and delete.
func NewOwnedResourceService[T any](repo repository.CrudRepository[T], ownership Ownership[T], logger *slog.Logger) usecase.ResourceUsecase[T] {
	return &ownedResourceService[T]{
		repo:      repo,
		ownership: ownership,
		logger:    logger,
	}
}

func (srv *ownedResourceService[T]) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

func (srv *ownedResourceService[T]) List(ctx context.Context, filter repository.Fields) ([]*T, error) {
	records, err := srv.repo.Find(ctx, filter)
	if err != nil {
		return nil, srv.storeError(ctx, err, "list")
	}

	return records, nil
}

func (srv *ownedResourceService[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	record, err := srv.repo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.storeError(ctx, err, "get")
	}

	return record, nil
}

func (srv *ownedResourceService[T]) Create(ctx context.Context, callerID uuid.UUID, record *T) (*T, error) {
	if callerID != uuid.Nil {
		srv.ownership.SetOwner(record, callerID)
	}

	if srv.ownership.BeforeCreate != nil {
		if err := srv.ownership.BeforeCreate(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := srv.repo.Create(ctx, record); err != nil {
		return nil, srv.storeError(ctx, err, "create")
	}

	return record, nil
}

func (srv *ownedResourceService[T]) Update(ctx context.Context, callerID, id uuid.UUID, changes repository.Fields) (*T, error) {
	existing, err := srv.repo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.storeError(ctx, err, "update")
	}

	owner := srv.ownership.Owner(existing)
	if requested, ok := changes[srv.ownership.OwnerField]; ok && !sameOwner(requested, owner) {
		return nil, domainerrors.ErrValidationFailed.WithMessage(
			fmt.Sprintf("%s is immutable", srv.ownership.OwnerField))
	}
	if owner != callerID {
		return nil, domainerrors.ErrForbidden.WithMessage(
			fmt.Sprintf("You are not allowed to update this %s", strings.ToLower(srv.ownership.Resource)))
	}

	if srv.ownership.BeforeUpdate != nil {
		if err := srv.ownership.BeforeUpdate(ctx, existing, changes); err != nil {
			return nil, err
		}
	}

	updated, err := srv.repo.FindByIDAndUpdate(ctx, id, changes)
	if err != nil {
		return nil, srv.storeError(ctx, err, "update")
	}

	return updated, nil
}

func (srv *ownedResourceService[T]) Delete(ctx context.Context, callerID, id uuid.UUID) (*T, error) {
	existing, err := srv.repo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.storeError(ctx, err, "delete")
	}

	if srv.ownership.Owner(existing) != callerID {
		return nil, domainerrors.ErrForbidden.WithMessage(
			fmt.Sprintf("You are not allowed to delete this %s", strings.ToLower(srv.ownership.Resource)))
	}

	deleted, err := srv.repo.FindByIDAndDelete(ctx, id)
	if err != nil {
		return nil, srv.storeError(ctx, err, "delete")
	}

	return deleted, nil
}

// storeError maps repository failures onto the error taxonomy. Anything unrecognised is a 500.
func (srv *ownedResourceService[T]) storeError(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		return domainerrors.ErrNotFound.WithMessage(srv.ownership.Resource + " not found")
	case errors.Is(err, repository.ErrUnknownField), errors.Is(err, repository.ErrInvalidFieldValue):
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	srv.log(ctx).Error("Store failure", slog.String("resource", srv.ownership.Resource),
		slog.String("op", op), slog.Any("error", err))

	return domainerrors.NewInternalError(err, fmt.Sprintf("failed to %s %s", op, strings.ToLower(srv.ownership.Resource)))
}

// sameOwner reports whether a requested owner value names owner. Unparseable values never do.
func sameOwner(requested any, owner uuid.UUID) bool {
	id, ok := parseID(requested)

	return ok && id == owner
}

// parseID accepts an ID as decoded from JSON or as set by a caller in Go.
func parseID(value any) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case string:
		id, err := uuid.Parse(v)

		return id, err == nil
	default:
		return uuid.Nil, false
	}
}
