package repositories

import "olympusblog/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByArticle(articleID string) ([]models.Comment, error)
	Delete(id string) error
}
