package repositories

import (
	"errors"
	"fmt"
	"strings"

	"olympusblog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMArticleRepository is a GORM implementation of ArticleRepository.
type GORMArticleRepository struct {
	db *gorm.DB
}

// NewGORMArticleRepository creates a new instance of GORMArticleRepository.
func NewGORMArticleRepository(db *gorm.DB) *GORMArticleRepository {
	return &GORMArticleRepository{
		db: db,
	}
}

// Create inserts the article and associates its tag set in one transaction.
// A duplicate slug surfaces as models.ErrConflict so the caller can retry
// with a fresh suffix.
func (r *GORMArticleRepository) Create(article *models.Article, tagNames []string) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author").Create(article).Error; err != nil {
			return err
		}
		tags, err := getOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		return tx.Model(article).Association("Tags").Replace(&tags)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("slug %s taken: %w", article.Slug, models.ErrConflict)
		}
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// GetBySlug retrieves a single article with its tags and author loaded.
func (r *GORMArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Tags").Preload("Author").First(&article, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %s: %w", slug, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by slug %s: %w", slug, err)
	}
	return &article, nil
}

// Update saves the article's fields and, when tagNames is non-nil, replaces
// the whole tag set with the resolved tags.
func (r *GORMArticleRepository) Update(article *models.Article, tagNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author").Save(article).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		tags, err := getOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		return tx.Model(article).Association("Tags").Replace(&tags)
	})
	if err != nil {
		return fmt.Errorf("failed to update article %s: %w", article.Slug, err)
	}
	return nil
}

// Delete hard-deletes the article and cascades to its tag associations,
// favorite and bookmark edges, and comments.
func (r *GORMArticleRepository) Delete(article *models.Article) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(article).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleBookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete article %s: %w", article.Slug, err)
	}
	return nil
}

// List composes the filter predicates into a single query over a distinct
// article set, fetches limit+1 rows and reports hasMore when the extra row
// came back. Name filters that resolve to nothing return an empty page.
func (r *GORMArticleRepository) List(filter ListFilter) ([]models.Article, bool, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	q := r.db.Model(&models.Article{}).Distinct()

	if filter.Author != "" {
		var author models.User
		if err := r.db.First(&author, "username = ?", filter.Author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("failed to resolve author %s: %w", filter.Author, err)
		}
		q = q.Where("articles.author_id = ?", author.ID)
	}

	if filter.FavoritedBy != "" {
		var favoritedBy models.User
		if err := r.db.First(&favoritedBy, "username = ?", filter.FavoritedBy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("failed to resolve user %s: %w", filter.FavoritedBy, err)
		}
		q = q.Where("EXISTS (SELECT 1 FROM article_favorites WHERE article_favorites.article_id = articles.id AND article_favorites.user_id = ?)", favoritedBy.ID)
	}

	if filter.Tag != "" {
		var tag models.Tag
		if err := r.db.First(&tag, "LOWER(name) = ?", strings.ToLower(filter.Tag)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("failed to resolve tag %s: %w", filter.Tag, err)
		}
		q = q.Where("EXISTS (SELECT 1 FROM article_tags WHERE article_tags.article_id = articles.id AND article_tags.tag_id = ?)", tag.ID)
	}

	if filter.Bookmarked && filter.ViewerID != "" {
		q = q.Where("EXISTS (SELECT 1 FROM article_bookmarks WHERE article_bookmarks.article_id = articles.id AND article_bookmarks.user_id = ?)", filter.ViewerID)
	}

	if filter.Following && filter.ViewerID != "" {
		q = q.Where("articles.author_id IN (SELECT followee_id FROM followings WHERE follower_id = ?)", filter.ViewerID)
	}

	if filter.Cursor != nil {
		q = q.Where("articles.created_at <= ?", *filter.Cursor)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(articles.title) LIKE ? OR LOWER(articles.description) LIKE ?", pattern, pattern)
	}

	switch filter.Order {
	case OrderAsc:
		q = q.Order("articles.created_at ASC")
	case OrderTop:
		q = q.Order("(SELECT COUNT(*) FROM article_favorites WHERE article_favorites.article_id = articles.id) DESC")
	default:
		q = q.Order("articles.created_at DESC")
	}

	offset := filter.Page - 1
	if offset < 0 {
		offset = 0
	}

	var articles []models.Article
	err := q.Limit(limit + 1).
		Offset(offset * limit).
		Preload("Tags").
		Preload("Author").
		Find(&articles).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to list articles: %w", err)
	}

	hasMore := len(articles) == limit+1
	if hasMore {
		articles = articles[:limit]
	}
	return articles, hasMore, nil
}

// AllTags returns up to limit tag names.
func (r *GORMArticleRepository) AllTags(limit int) ([]string, error) {
	var names []string
	if err := r.db.Model(&models.Tag{}).Limit(limit).Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return names, nil
}

// getOrCreateTags resolves each name to an existing tag row, creating any
// that are missing. Duplicate rows for the same name are never created.
func getOrCreateTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := tx.First(&tag, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{ID: uuid.New().String(), Name: name}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %s: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
