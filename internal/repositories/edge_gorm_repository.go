package repositories

import (
	"fmt"

	"olympusblog/internal/models"

	"gorm.io/gorm"
)

// GORMEdgeRepository is a GORM implementation of EdgeRepository backed by the
// three edge tables. Toggles check existence and then insert or delete the
// single edge row; the whole collection is never loaded.
type GORMEdgeRepository struct {
	db *gorm.DB
}

// NewGORMEdgeRepository creates a new instance of GORMEdgeRepository.
func NewGORMEdgeRepository(db *gorm.DB) *GORMEdgeRepository {
	return &GORMEdgeRepository{
		db: db,
	}
}

// record builds the edge row for the given kind. For favorites and bookmarks
// the subject is the user and the object the article; for follows the subject
// is the follower and the object the followee.
func (r *GORMEdgeRepository) record(kind EdgeKind, subjectID, objectID string) (interface{}, error) {
	switch kind {
	case EdgeFavorite:
		return &models.ArticleFavorite{ArticleID: objectID, UserID: subjectID}, nil
	case EdgeBookmark:
		return &models.ArticleBookmark{ArticleID: objectID, UserID: subjectID}, nil
	case EdgeFollow:
		return &models.Following{FolloweeID: objectID, FollowerID: subjectID}, nil
	default:
		return nil, fmt.Errorf("unknown edge kind %q", kind)
	}
}

// Exists reports whether the edge row is present.
func (r *GORMEdgeRepository) Exists(kind EdgeKind, subjectID, objectID string) (bool, error) {
	record, err := r.record(kind, subjectID, objectID)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.Model(record).Where(record).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s edge: %w", kind, err)
	}
	return count > 0, nil
}

// Add inserts the edge if it is not already present. The check and the insert
// run in one transaction; two concurrent adds of the same
// edge can still race, which is benign because the end state is identical.
func (r *GORMEdgeRepository) Add(kind EdgeKind, subjectID, objectID string) error {
	record, err := r.record(kind, subjectID, objectID)
	if err != nil {
		return err
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(record).Where(record).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to add %s edge: %w", kind, err)
	}
	return nil
}

// Remove deletes the edge; removing an absent edge is a no-op.
func (r *GORMEdgeRepository) Remove(kind EdgeKind, subjectID, objectID string) error {
	record, err := r.record(kind, subjectID, objectID)
	if err != nil {
		return err
	}
	if err := r.db.Where(record).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to remove %s edge: %w", kind, err)
	}
	return nil
}

// Count returns the number of edges pointing at the object.
func (r *GORMEdgeRepository) Count(kind EdgeKind, objectID string) (int64, error) {
	var count int64
	var err error
	switch kind {
	case EdgeFavorite:
		err = r.db.Model(&models.ArticleFavorite{}).Where("article_id = ?", objectID).Count(&count).Error
	case EdgeBookmark:
		err = r.db.Model(&models.ArticleBookmark{}).Where("article_id = ?", objectID).Count(&count).Error
	case EdgeFollow:
		err = r.db.Model(&models.Following{}).Where("followee_id = ?", objectID).Count(&count).Error
	default:
		return 0, fmt.Errorf("unknown edge kind %q", kind)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s edges: %w", kind, err)
	}
	return count, nil
}

// SubjectCount returns the number of edges originating from the subject.
func (r *GORMEdgeRepository) SubjectCount(kind EdgeKind, subjectID string) (int64, error) {
	var count int64
	var err error
	switch kind {
	case EdgeFavorite:
		err = r.db.Model(&models.ArticleFavorite{}).Where("user_id = ?", subjectID).Count(&count).Error
	case EdgeBookmark:
		err = r.db.Model(&models.ArticleBookmark{}).Where("user_id = ?", subjectID).Count(&count).Error
	case EdgeFollow:
		err = r.db.Model(&models.Following{}).Where("follower_id = ?", subjectID).Count(&count).Error
	default:
		return 0, fmt.Errorf("unknown edge kind %q", kind)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %s edges: %w", kind, err)
	}
	return count, nil
}
