package database

import (
	"postboard/internal/domain/entity"
	"postboard/internal/domain/repository"
	"postboard/internal/infra/persistence/model"

	"gorm.io/gorm"
)

var postColumns = map[string]column{
	"title":    {name: "title"},
	"body":     {name: "body"},
	"senderID": {name: "sender_id", isUUID: true},
}

// NewPostRepository is the constructor for the posts store.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &crudRepository[entity.Post, model.PostModel]{
		db:       db,
		resource: "post",
		columns:  postColumns,
		toDomain: toPostDomain,
		toModel:  fromPostDomain,
	}
}

func fromPostDomain(post *entity.Post) *model.PostModel {
	return &model.PostModel{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		SenderID: post.SenderID,
	}
}

func toPostDomain(postM *model.PostModel) *entity.Post {
	return &entity.Post{
		ID:       postM.ID,
		Title:    postM.Title,
		Body:     postM.Body,
		SenderID: postM.SenderID,
	}
}
