// Package community implements the paddlers' discussion board.
package community

import (
	"errors"
	"time"
)

// ErrPostNotFound is returned when no post has the requested id.
var ErrPostNotFound = errors.New("post not found")

// Category classifies a post.
type Category string

const (
	CategoryQuestion   Category = "question"
	CategoryAdvice     Category = "conseil"
	CategorySharing    Category = "partage"
	CategoryDiscussion Category = "discussion"
)

// Post is a message on the board.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reply is an answer to a post.
type Reply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Author identifies the user writing a post or reply.
type Author struct {
	UserID   string
	UserName string
}

// NewPost is the input for creating a post.
type NewPost struct {
	Content  string   `json:"content" validate:"required,max=2000"`
	Category Category `json:"category" validate:"omitempty,oneof=question conseil partage discussion"`
}

// NewReply is the input for replying to a post.
type NewReply struct {
	Content string `json:"content" validate:"required,max=1000"`
}
