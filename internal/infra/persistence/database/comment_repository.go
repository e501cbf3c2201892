package database

import (
	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"
	"postboard/internal/infra/persistence/model"

	"gorm.io/gorm"
)

var commentColumns = map[string]column{
	"postID":  {name: "post_id", isUUID: true},
	"userID":  {name: "user_id", isUUID: true},
	"content": {name: "content"},
}

// NewCommentRepository is the constructor for the comments store.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &crudRepository[entity.Comment, model.CommentModel]{
		db:       db,
		resource: "comment",
		columns:  commentColumns,
		toDomain: toCommentDomain,
		toModel:  fromCommentDomain,
	}
}

func fromCommentDomain(comment *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		ID:      comment.ID,
		PostID:  comment.PostID,
		UserID:  comment.UserID,
		Content: comment.Content,
	}
}

func toCommentDomain(commentM *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:      commentM.ID,
		PostID:  commentM.PostID,
		UserID:  commentM.UserID,
		Content: commentM.Content,
	}
}
