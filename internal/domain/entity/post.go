package entity

import "github.com/google/uuid"

// Post is an owned resource; SenderID is the author and is set from the caller on create.
type Post struct {
	ID       uuid.UUID
	Title    string
	Body     string
	SenderID uuid.UUID
}
