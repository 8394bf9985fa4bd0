package services

import (
	"errors"
	"fmt"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
	"olympusblog/pkg/storage"
)

// slugRetries bounds the regenerate-and-retry loop on slug collisions. The
// suffix space is 36^6 so a second attempt almost always succeeds.
const slugRetries = 5

// ArticleService handles articles: CRUD, the feed query, the
// favorite/bookmark toggles and the viewer-relative projection.
type ArticleService struct {
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
	edgeRepo    repositories.EdgeRepository
	files       storage.FileStorage
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articleRepo repositories.ArticleRepository,
	userRepo repositories.UserRepository,
	edgeRepo repositories.EdgeRepository,
	files storage.FileStorage,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		edgeRepo:    edgeRepo,
		files:       files,
	}
}

// CreateArticle creates an article for the author. When no image accompanies
// the request a generated placeholder URL is substituted. Slug collisions are
// retried with a fresh suffix.
func (s *ArticleService) CreateArticle(userID string, req models.NewArticleRequest) (*models.ArticleResponse, error) {
	author, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	imageURL := fmt.Sprintf("https://picsum.photos/seed/%s/1080", randomString(12))
	if len(req.Image) > 0 {
		imageURL, err = s.files.Upload(req.Image, fmt.Sprintf("%s/%s", userID, randomString(16)))
		if err != nil {
			return nil, fmt.Errorf("failed to upload article image: %w", err)
		}
	}

	article := &models.Article{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Image:       imageURL,
		AuthorID:    author.ID,
	}
	for attempt := 0; ; attempt++ {
		article.Slug = generateSlug(req.Title)
		err = s.articleRepo.Create(article, req.TagList)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrConflict) || attempt >= slugRetries {
			return nil, err
		}
	}

	created, err := s.articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(created, userID)
}

// GetArticle projects a single article relative to the viewer (empty
// viewerID = anonymous).
func (s *ArticleService) GetArticle(slug, viewerID string) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(article, viewerID)
}

// ListArticles runs the feed query with the given filters and projects each
// returned article relative to the viewer.
func (s *ArticleService) ListArticles(viewerID string, filter repositories.ListFilter) (*models.ArticleListResponse, error) {
	filter.ViewerID = viewerID
	articles, hasMore, err := s.articleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	responses := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		resp, err := s.buildResponse(&articles[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return &models.ArticleListResponse{Articles: responses, HasMore: hasMore}, nil
}

// GetFeed lists articles authored by users the viewer follows.
func (s *ArticleService) GetFeed(viewerID string, filter repositories.ListFilter) (*models.ArticleListResponse, error) {
	filter.Following = true
	return s.ListArticles(viewerID, filter)
}

// GetBookmarked lists articles the viewer bookmarked.
func (s *ArticleService) GetBookmarked(viewerID string, filter repositories.ListFilter) (*models.ArticleListResponse, error) {
	filter.Bookmarked = true
	return s.ListArticles(viewerID, filter)
}

// UpdateArticle applies a partial update. Only the author may update; absent
// fields keep their value and a nil tag list leaves the tag set untouched.
func (s *ArticleService) UpdateArticle(userID, slug string, req models.UpdateArticleRequest) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, fmt.Errorf("not the article author: %w", models.ErrForbidden)
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if len(req.Image) > 0 {
		url, err := s.files.Upload(req.Image, fmt.Sprintf("%s/%s", userID, randomString(16)))
		if err != nil {
			return nil, fmt.Errorf("failed to upload article image: %w", err)
		}
		article.Image = url
	}
	article.UpdatedAt = time.Now()

	if err := s.articleRepo.Update(article, req.TagList); err != nil {
		return nil, err
	}

	updated, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(updated, userID)
}

// DeleteArticle hard-deletes an author's article and returns its final
// projection.
func (s *ArticleService) DeleteArticle(userID, slug string) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, fmt.Errorf("not the article author: %w", models.ErrForbidden)
	}
	resp, err := s.buildResponse(article, userID)
	if err != nil {
		return nil, err
	}
	if err := s.articleRepo.Delete(article); err != nil {
		return nil, err
	}
	return resp, nil
}

// FavoriteArticle adds the viewer's favorite edge and returns the up-to-date
// projection whether or not a mutation happened.
func (s *ArticleService) FavoriteArticle(userID, slug string) (*models.ArticleResponse, error) {
	return s.toggleEdge(repositories.EdgeFavorite, userID, slug, true)
}

// UnfavoriteArticle removes the viewer's favorite edge.
func (s *ArticleService) UnfavoriteArticle(userID, slug string) (*models.ArticleResponse, error) {
	return s.toggleEdge(repositories.EdgeFavorite, userID, slug, false)
}

// BookmarkArticle adds the viewer's bookmark edge.
func (s *ArticleService) BookmarkArticle(userID, slug string) (*models.ArticleResponse, error) {
	return s.toggleEdge(repositories.EdgeBookmark, userID, slug, true)
}

// UnbookmarkArticle removes the viewer's bookmark edge.
func (s *ArticleService) UnbookmarkArticle(userID, slug string) (*models.ArticleResponse, error) {
	return s.toggleEdge(repositories.EdgeBookmark, userID, slug, false)
}

func (s *ArticleService) toggleEdge(kind repositories.EdgeKind, userID, slug string, add bool) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if add {
		err = s.edgeRepo.Add(kind, userID, article.ID)
	} else {
		err = s.edgeRepo.Remove(kind, userID, article.ID)
	}
	if err != nil {
		return nil, err
	}
	return s.buildResponse(article, userID)
}

// AllTags returns up to 20 tag names.
func (s *ArticleService) AllTags() ([]string, error) {
	return s.articleRepo.AllTags(20)
}

// buildResponse projects a stored article plus the viewer into the response
// view. Anonymous viewers always see favorited and bookmarked as false.
func (s *ArticleService) buildResponse(article *models.Article, viewerID string) (*models.ArticleResponse, error) {
	tagList := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tagList = append(tagList, tag.Name)
	}

	favoritesCount, err := s.edgeRepo.Count(repositories.EdgeFavorite, article.ID)
	if err != nil {
		return nil, err
	}

	favorited := false
	bookmarked := false
	if viewerID != "" {
		favorited, err = s.edgeRepo.Exists(repositories.EdgeFavorite, viewerID, article.ID)
		if err != nil {
			return nil, err
		}
		bookmarked, err = s.edgeRepo.Exists(repositories.EdgeBookmark, viewerID, article.ID)
		if err != nil {
			return nil, err
		}
	}

	author := article.Author
	if author.ID == "" {
		loaded, err := s.userRepo.GetByID(article.AuthorID)
		if err != nil {
			return nil, err
		}
		author = *loaded
	}
	authorProfile, err := projectProfile(s.edgeRepo, &author, viewerID)
	if err != nil {
		return nil, err
	}

	return &models.ArticleResponse{
		ID:             article.ID,
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		Image:          article.Image,
		TagList:        tagList,
		CreatedAt:      article.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      article.UpdatedAt.Format(time.RFC3339),
		Favorited:      favorited,
		Bookmarked:     bookmarked,
		FavoritesCount: favoritesCount,
		Author:         authorProfile,
	}, nil
}
