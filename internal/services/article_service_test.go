package services_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
	"olympusblog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newArticleService() (*services.ArticleService, *MockArticleRepository, *MockUserRepository, *MockEdgeRepository, *MockFileStorage) {
	articleRepo := new(MockArticleRepository)
	userRepo := new(MockUserRepository)
	edgeRepo := new(MockEdgeRepository)
	files := new(MockFileStorage)
	svc := services.NewArticleService(articleRepo, userRepo, edgeRepo, files)
	return svc, articleRepo, userRepo, edgeRepo, files
}

func storedArticle(id, slug, authorID string) *models.Article {
	now := time.Now()
	return &models.Article{
		ID:          id,
		Slug:        slug,
		Title:       "Understanding Idempotent APIs",
		Description: "Idempotency for mortals",
		Body:        "Calling twice should not hurt.",
		Image:       "https://picsum.photos/seed/abc/1080",
		AuthorID:    authorID,
		Author:      models.User{ID: authorID, Username: "alice"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateArticle_SlugFormat(t *testing.T) {
	svc, articleRepo, userRepo, edgeRepo, _ := newArticleService()

	userRepo.On("GetByID", "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil)

	var capturedSlug, capturedImage string
	articleRepo.On("Create", mock.AnythingOfType("*models.Article"), []string{"go", "http"}).
		Run(func(args mock.Arguments) {
			article := args.Get(0).(*models.Article)
			article.ID = "a1"
			capturedSlug = article.Slug
			capturedImage = article.Image
		}).
		Return(nil)
	articleRepo.On("GetBySlug", mock.AnythingOfType("string")).Return(storedArticle("a1", "slug", "u1"), nil)

	edgeRepo.On("Count", repositories.EdgeFavorite, "a1").Return(int64(0), nil)
	edgeRepo.On("Exists", repositories.EdgeFavorite, "u1", "a1").Return(false, nil)
	edgeRepo.On("Exists", repositories.EdgeBookmark, "u1", "a1").Return(false, nil)
	edgeRepo.On("Count", repositories.EdgeFollow, "u1").Return(int64(0), nil)
	edgeRepo.On("SubjectCount", repositories.EdgeFollow, "u1").Return(int64(0), nil)
	edgeRepo.On("Exists", repositories.EdgeFollow, "u1", "u1").Return(false, nil)

	resp, err := svc.CreateArticle("u1", models.NewArticleRequest{
		Title:       "Understanding Idempotent APIs",
		Description: "Idempotency for mortals",
		Body:        "Calling twice should not hurt.",
		TagList:     []string{"go", "http"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Regexp(t, regexp.MustCompile(`^understanding-idempotent-apis-[a-z0-9]{6}$`), capturedSlug)
	assert.Regexp(t, regexp.MustCompile(`^https://picsum\.photos/seed/[a-z0-9]{12}/1080$`), capturedImage)
	assert.False(t, resp.Favorited)
	assert.Equal(t, int64(0), resp.FavoritesCount)
	articleRepo.AssertExpectations(t)
}

func TestCreateArticle_RetriesOnSlugCollision(t *testing.T) {
	svc, articleRepo, userRepo, edgeRepo, _ := newArticleService()

	userRepo.On("GetByID", "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil)

	var slugs []string
	capture := func(args mock.Arguments) {
		article := args.Get(0).(*models.Article)
		article.ID = "a1"
		slugs = append(slugs, article.Slug)
	}
	articleRepo.On("Create", mock.AnythingOfType("*models.Article"), []string(nil)).
		Run(capture).
		Return(fmt.Errorf("slug taken: %w", models.ErrConflict)).Once()
	articleRepo.On("Create", mock.AnythingOfType("*models.Article"), []string(nil)).
		Run(capture).
		Return(nil).Once()
	articleRepo.On("GetBySlug", mock.AnythingOfType("string")).Return(storedArticle("a1", "slug", "u1"), nil)

	edgeRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	edgeRepo.On("SubjectCount", mock.Anything, mock.Anything).Return(int64(0), nil)
	edgeRepo.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.CreateArticle("u1", models.NewArticleRequest{Title: "Understanding Idempotent APIs"})

	assert.NoError(t, err)
	assert.Len(t, slugs, 2)
	assert.NotEqual(t, slugs[0], slugs[1], "a collision should regenerate the suffix")
	articleRepo.AssertExpectations(t)
}

func TestUpdateArticle_ForbiddenForNonAuthor(t *testing.T) {
	svc, articleRepo, _, _, _ := newArticleService()

	articleRepo.On("GetBySlug", "some-slug").Return(storedArticle("a1", "some-slug", "owner"), nil)

	title := "New Title For The Article"
	_, err := svc.UpdateArticle("intruder", "some-slug", models.UpdateArticleRequest{Title: &title})

	assert.ErrorIs(t, err, models.ErrForbidden)
	articleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteArticle_ForbiddenForNonAuthor(t *testing.T) {
	svc, articleRepo, _, _, _ := newArticleService()

	articleRepo.On("GetBySlug", "some-slug").Return(storedArticle("a1", "some-slug", "owner"), nil)

	_, err := svc.DeleteArticle("intruder", "some-slug")

	assert.ErrorIs(t, err, models.ErrForbidden)
	articleRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestGetArticle_AnonymousProjection(t *testing.T) {
	svc, articleRepo, _, edgeRepo, _ := newArticleService()

	articleRepo.On("GetBySlug", "some-slug").Return(storedArticle("a1", "some-slug", "u1"), nil)
	edgeRepo.On("Count", repositories.EdgeFavorite, "a1").Return(int64(3), nil)
	edgeRepo.On("Count", repositories.EdgeFollow, "u1").Return(int64(2), nil)
	edgeRepo.On("SubjectCount", repositories.EdgeFollow, "u1").Return(int64(1), nil)

	resp, err := svc.GetArticle("some-slug", "")

	assert.NoError(t, err)
	assert.False(t, resp.Favorited)
	assert.False(t, resp.Bookmarked)
	assert.Equal(t, int64(3), resp.FavoritesCount)
	assert.False(t, resp.Author.Following)
	edgeRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteArticle_AddsEdgeAndProjects(t *testing.T) {
	svc, articleRepo, _, edgeRepo, _ := newArticleService()

	articleRepo.On("GetBySlug", "some-slug").Return(storedArticle("a1", "some-slug", "author"), nil)
	edgeRepo.On("Add", repositories.EdgeFavorite, "viewer", "a1").Return(nil)
	edgeRepo.On("Count", repositories.EdgeFavorite, "a1").Return(int64(1), nil)
	edgeRepo.On("Exists", repositories.EdgeFavorite, "viewer", "a1").Return(true, nil)
	edgeRepo.On("Exists", repositories.EdgeBookmark, "viewer", "a1").Return(false, nil)
	edgeRepo.On("Count", repositories.EdgeFollow, "author").Return(int64(0), nil)
	edgeRepo.On("SubjectCount", repositories.EdgeFollow, "author").Return(int64(0), nil)
	edgeRepo.On("Exists", repositories.EdgeFollow, "viewer", "author").Return(false, nil)

	resp, err := svc.FavoriteArticle("viewer", "some-slug")

	assert.NoError(t, err)
	assert.True(t, resp.Favorited)
	assert.Equal(t, int64(1), resp.FavoritesCount)
	edgeRepo.AssertCalled(t, "Add", repositories.EdgeFavorite, "viewer", "a1")
}

func TestListArticles_SetsViewerAndProjects(t *testing.T) {
	svc, articleRepo, _, edgeRepo, _ := newArticleService()

	articles := []models.Article{*storedArticle("a1", "s1", "author"), *storedArticle("a2", "s2", "author")}
	articleRepo.On("List", mock.MatchedBy(func(f repositories.ListFilter) bool {
		return f.ViewerID == "viewer" && f.Tag == "go"
	})).Return(articles, true, nil)

	edgeRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	edgeRepo.On("SubjectCount", mock.Anything, mock.Anything).Return(int64(0), nil)
	edgeRepo.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	resp, err := svc.ListArticles("viewer", repositories.ListFilter{Tag: "go", Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, resp.Articles, 2)
	assert.True(t, resp.HasMore)
}
