package impl

import (
	"context"
	"net/http"
	"testing"

	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"
	mockRepo "postboard/internal/mocks/repository"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T) (usecase.PostUsecase, *mockRepo.MockCrudRepository[entity.Post]) {
	repo := mockRepo.NewMockCrudRepository[entity.Post](t)

	return NewPostService(PostServiceParams{PostRepo: repo, Logger: newDiscardLogger()}), repo
}

func TestPostService_CreateSetsSenderFromCaller(t *testing.T) {
	svc, repo := newPostService(t)
	ctx := context.Background()
	callerID := uuid.New()
	forged := uuid.New()

	repo.EXPECT().Create(ctx, mock.MatchedBy(func(p *entity.Post) bool {
		return p.SenderID == callerID
	})).Return(nil)

	post, err := svc.Create(ctx, callerID, &entity.Post{Title: "hello", Body: "world", SenderID: forged})
	require.NoError(t, err)
	assert.Equal(t, callerID, post.SenderID)
}

func TestPostService_CreateWithoutCallerKeepsSender(t *testing.T) {
	svc, repo := newPostService(t)
	ctx := context.Background()
	sender := uuid.New()

	repo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Post")).Return(nil)

	post, err := svc.Create(ctx, uuid.Nil, &entity.Post{Title: "hello", SenderID: sender})
	require.NoError(t, err)
	assert.Equal(t, sender, post.SenderID)
}

func TestPostService_Update(t *testing.T) {
	ownerID := uuid.New()
	postID := uuid.New()
	existing := &entity.Post{ID: postID, Title: "old", SenderID: ownerID}

	tests := []struct {
		name      string
		callerID  uuid.UUID
		changes   repository.Fields
		setup     func(repo *mockRepo.MockCrudRepository[entity.Post])
		wantCode  int
		wantMsg   string
		wantTitle string
	}{
		{
			name:     "owner updates",
			callerID: ownerID,
			changes:  repository.Fields{"title": "new"},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
				repo.EXPECT().FindByIDAndUpdate(mock.Anything, postID, repository.Fields{"title": "new"}).
					Return(&entity.Post{ID: postID, Title: "new", SenderID: ownerID}, nil)
			},
			wantTitle: "new",
		},
		{
			name:     "owner restates own sender",
			callerID: ownerID,
			changes:  repository.Fields{"title": "new", "senderID": ownerID.String()},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
				repo.EXPECT().FindByIDAndUpdate(mock.Anything, postID, mock.Anything).
					Return(&entity.Post{ID: postID, Title: "new", SenderID: ownerID}, nil)
			},
			wantTitle: "new",
		},
		{
			name:     "missing post",
			callerID: ownerID,
			changes:  repository.Fields{"title": "new"},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(nil, repository.ErrRecordNotFound)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Post not found",
		},
		{
			name:     "sender change rejected before ownership",
			callerID: uuid.New(),
			changes:  repository.Fields{"senderID": uuid.NewString()},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "senderID is immutable",
		},
		{
			name:     "not the owner",
			callerID: uuid.New(),
			changes:  repository.Fields{"title": "new"},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "You are not allowed to update this post",
		},
		{
			name:     "unknown field",
			callerID: ownerID,
			changes:  repository.Fields{"colour": "red"},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
				repo.EXPECT().FindByIDAndUpdate(mock.Anything, postID, mock.Anything).
					Return(nil, repository.ErrUnknownField)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Validation failed",
		},
		{
			name:     "non-text title",
			callerID: ownerID,
			changes:  repository.Fields{"title": nil},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
				repo.EXPECT().FindByIDAndUpdate(mock.Anything, postID, mock.Anything).
					Return(nil, repository.ErrInvalidFieldValue)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Validation failed",
		},
		{
			name:     "store failure",
			callerID: ownerID,
			changes:  repository.Fields{"title": "new"},
			setup: func(repo *mockRepo.MockCrudRepository[entity.Post]) {
				repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
				repo.EXPECT().FindByIDAndUpdate(mock.Anything, postID, mock.Anything).
					Return(nil, errDatabase)
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newPostService(t)
			tt.setup(repo)

			post, err := svc.Update(context.Background(), tt.callerID, postID, tt.changes)
			if tt.wantCode != 0 {
				requireAppError(t, err, tt.wantCode, tt.wantMsg)
				assert.Nil(t, post)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, post.Title)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	ownerID := uuid.New()
	postID := uuid.New()
	existing := &entity.Post{ID: postID, SenderID: ownerID}

	t.Run("owner deletes", func(t *testing.T) {
		svc, repo := newPostService(t)
		repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)
		repo.EXPECT().FindByIDAndDelete(mock.Anything, postID).Return(existing, nil)

		deleted, err := svc.Delete(context.Background(), ownerID, postID)
		require.NoError(t, err)
		assert.Equal(t, existing, deleted)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, repo := newPostService(t)
		repo.EXPECT().FindByID(mock.Anything, postID).Return(existing, nil)

		_, err := svc.Delete(context.Background(), uuid.New(), postID)
		requireAppError(t, err, http.StatusForbidden, "You are not allowed to delete this post")
	})

	t.Run("missing post", func(t *testing.T) {
		svc, repo := newPostService(t)
		repo.EXPECT().FindByID(mock.Anything, postID).Return(nil, repository.ErrRecordNotFound)

		_, err := svc.Delete(context.Background(), ownerID, postID)
		requireAppError(t, err, http.StatusNotFound, "Post not found")
	})
}

func TestPostService_ListAndGet(t *testing.T) {
	svc, repo := newPostService(t)
	ctx := context.Background()
	sender := uuid.New()
	posts := []*entity.Post{{ID: uuid.New(), SenderID: sender}}
	filter := repository.Fields{"senderID": sender.String()}

	repo.EXPECT().Find(ctx, filter).Return(posts, nil)
	repo.EXPECT().Find(ctx, repository.Fields{"bogus": "x"}).Return(nil, repository.ErrUnknownField)
	repo.EXPECT().FindByID(ctx, posts[0].ID).Return(posts[0], nil)

	listed, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, posts, listed)

	_, err = svc.List(ctx, repository.Fields{"bogus": "x"})
	requireAppError(t, err, http.StatusBadRequest, "")

	got, err := svc.Get(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, posts[0], got)
}
