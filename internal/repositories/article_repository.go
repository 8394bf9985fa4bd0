package repositories

import (
	"time"

	"olympusblog/internal/models"
)

// Order values accepted by ListFilter.
const (
	OrderDesc = "DESC"
	OrderAsc  = "ASC"
	OrderTop  = "TOP"
)

// ListFilter holds the optional predicates of an article listing. All
// supplied filters combine with AND. Author, FavoritedBy and Tag are resolved
// by name; an unresolved name short-circuits to an empty page instead of an
// error. Cursor bounds createdAt from above and composes independently of the
// Page offset.
type ListFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	ViewerID    string
	Bookmarked  bool
	Following   bool
	Search      string
	Cursor      *time.Time
	Limit       int
	Page        int
	Order       string
}

// ArticleRepository defines the interface for article data access. List
// fetches one row more than the page size so callers learn whether another
// page exists without a second COUNT query.
type ArticleRepository interface {
	Create(article *models.Article, tagNames []string) error
	GetBySlug(slug string) (*models.Article, error)
	Update(article *models.Article, tagNames []string) error
	Delete(article *models.Article) error
	List(filter ListFilter) ([]models.Article, bool, error)
	AllTags(limit int) ([]string, error)
}
