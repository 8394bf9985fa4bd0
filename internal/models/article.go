package models

import "time"

// Article is a published post. The slug is generated once at creation and
// never changes; AuthorID is immutable as well.
type Article struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(255)"`
	Title       string    `json:"title" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	Body        string    `json:"body" gorm:"type:text"`
	Image       string    `json:"image" gorm:"type:varchar(255)"`
	AuthorID    string    `json:"-" gorm:"index;type:varchar(36)"`
	Author      User      `json:"-"`
	Tags        []Tag     `json:"-" gorm:"many2many:article_tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Tag is a label attached to articles. Tags are created lazily on first use
// and never deleted.
type Tag struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"uniqueIndex;type:varchar(255)"`
}

// ArticleFavorite is the favorite edge between a user and an article.
type ArticleFavorite struct {
	ArticleID string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
}

// ArticleBookmark is the bookmark edge between a user and an article.
type ArticleBookmark struct {
	ArticleID string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
}

// NewArticleRequest is the multipart payload for creating an article.
type NewArticleRequest struct {
	Title       string   `form:"title" validate:"required,min=10,max=100"`
	Description string   `form:"description" validate:"required,min=10,max=150"`
	Body        string   `form:"body" validate:"required"`
	TagList     []string `form:"tagList" validate:"required,min=1,max=5,dive,min=3,max=15"`
	Image       []byte   `form:"-" validate:"-"`
}

// UpdateArticleRequest carries a partial article update. Nil fields keep
// their current value; a nil TagList leaves the tag set untouched.
type UpdateArticleRequest struct {
	Title       *string  `form:"title" validate:"omitempty,min=10,max=100"`
	Description *string  `form:"description" validate:"omitempty,min=10,max=150"`
	Body        *string  `form:"body" validate:"omitempty,min=1"`
	TagList     []string `form:"tagList" validate:"omitempty,min=1,max=5,dive,min=3,max=15"`
	Image       []byte   `form:"-" validate:"-"`
}

// ArticleResponse is the projection of an article relative to the viewer:
// favorited and bookmarked reflect the requesting user and are always false
// for anonymous callers.
type ArticleResponse struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Body           string   `json:"body"`
	Image          string   `json:"image"`
	TagList        []string `json:"tagList"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Favorited      bool     `json:"favorited"`
	Bookmarked     bool     `json:"bookmarked"`
	FavoritesCount int64    `json:"favoritesCount"`
	Author         Profile  `json:"author"`
}

// ArticleListResponse is one page of articles plus a flag telling the client
// whether another page exists.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	HasMore  bool              `json:"hasMore"`
}
