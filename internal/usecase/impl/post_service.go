package impl

import (
	"log/slog"

	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	PostRepo repository.PostRepository
	Logger   *slog.Logger
}

// NewPostService returns posts CRUD with authorship bound to senderID.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return NewOwnedResourceService(params.PostRepo, Ownership[entity.Post]{
		Resource:   "Post",
		OwnerField: "senderID",
		Owner:      func(p *entity.Post) uuid.UUID { return p.SenderID },
		SetOwner:   func(p *entity.Post, id uuid.UUID) { p.SenderID = id },
	}, params.Logger)
}
