package models

import "time"

// Comment belongs to exactly one article.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Body      string    `json:"body" gorm:"type:text"`
	AuthorID  string    `json:"-" gorm:"index;type:varchar(36)"`
	ArticleID string    `json:"-" gorm:"index;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCommentRequest is the payload for posting a comment.
type NewCommentRequest struct {
	Body string `json:"body" validate:"required,min=3,max=250"`
}

// CommentResponse is the viewer-relative projection of a comment.
type CommentResponse struct {
	ID        string  `json:"id"`
	Body      string  `json:"body"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Author    Profile `json:"author"`
}
