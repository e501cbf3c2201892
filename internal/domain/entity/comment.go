package entity

import "github.com/google/uuid"

// Comment belongs to a post and is owned by UserID.
type Comment struct {
	ID      uuid.UUID
	PostID  uuid.UUID
	UserID  uuid.UUID
	Content string
}
