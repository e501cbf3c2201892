package impl

import (
	"context"
	"log/slog"

	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/errors"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var (
	errPostNotFound  = domainerrors.ErrNotFound.WithMessage("Post not found")
	errInvalidPostID = domainerrors.ErrValidationFailed.WithDetails("postID must be a UUID")
)

// CommentServiceParams holds dependencies for CommentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	CommentRepo repository.CommentRepository
	PostRepo    repository.PostRepository
	Logger      *slog.Logger
}

// NewCommentService returns comments CRUD owned by userID. A comment can only be attached to an existing post,
// on create and when an update moves it.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	postExists := func(ctx context.Context, postID uuid.UUID) error {
		if _, err := params.PostRepo.FindByID(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return errPostNotFound
			}

			return domainerrors.NewInternalError(err, "failed to find post")
		}

		return nil
	}

	return NewOwnedResourceService(params.CommentRepo, Ownership[entity.Comment]{
		Resource:   "Comment",
		OwnerField: "userID",
		Owner:      func(c *entity.Comment) uuid.UUID { return c.UserID },
		SetOwner:   func(c *entity.Comment, id uuid.UUID) { c.UserID = id },
		BeforeCreate: func(ctx context.Context, c *entity.Comment) error {
			return postExists(ctx, c.PostID)
		},
		BeforeUpdate: func(ctx context.Context, existing *entity.Comment, changes repository.Fields) error {
			requested, ok := changes["postID"]
			if !ok {
				return nil
			}
			id, ok := parseID(requested)
			if !ok {
				return errInvalidPostID
			}
			if id == existing.PostID {
				return nil
			}

			return postExists(ctx, id)
		},
	}, params.Logger)
}
