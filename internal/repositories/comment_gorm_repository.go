package repositories

import (
	"errors"
	"fmt"

	"olympusblog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create inserts a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID.
func (r *GORMCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// ListByArticle returns an article's comments, newest first.
func (r *GORMCommentRepository) ListByArticle(articleID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("article_id = ?", articleID).Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for article %s: %w", articleID, err)
	}
	return comments, nil
}

// Delete hard-deletes a comment by its ID.
func (r *GORMCommentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", id, models.ErrNotFound)
	}
	return nil
}
