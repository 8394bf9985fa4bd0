package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a fresh in-memory SQLite database named after the test so
// parallel tests never share state.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Following{},
		&models.Article{},
		&models.Tag{},
		&models.ArticleFavorite{},
		&models.ArticleBookmark{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

// seedArticle creates an article with an explicit createdAt so ordering tests
// are deterministic.
func seedArticle(t *testing.T, db *gorm.DB, repo repositories.ArticleRepository, author *models.User, slug string, createdAt time.Time, tags ...string) *models.Article {
	t.Helper()
	article := &models.Article{
		Slug:        slug,
		Title:       "Title of " + slug,
		Description: "Description of " + slug,
		Body:        "Body of " + slug,
		AuthorID:    author.ID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	assert.NoError(t, repo.Create(article, tags))
	return article
}

func TestArticleCreate_DuplicateSlugConflict(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	now := time.Now()
	seedArticle(t, db, repo, alice, "taken-slug", now)

	dup := &models.Article{Slug: "taken-slug", Title: "Other", AuthorID: alice.ID}
	err := repo.Create(dup, nil)

	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestArticleCreate_ReusesTagRows(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	now := time.Now()
	seedArticle(t, db, repo, alice, "first-article", now, "golang", "fiber")
	seedArticle(t, db, repo, alice, "second-article", now, "golang")

	var count int64
	assert.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "golang").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	tags, err := repo.AllTags(20)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"golang", "fiber"}, tags)
}

func TestArticleList_PaginationHasMore(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedArticle(t, db, repo, alice, fmt.Sprintf("article-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	// newest first: page 1 holds article-4 and article-3
	page1, hasMore, err := repo.List(repositories.ListFilter{Limit: 2, Page: 1})
	assert.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, "article-4", page1[0].Slug)
	assert.Equal(t, "article-3", page1[1].Slug)

	page2, hasMore, err := repo.List(repositories.ListFilter{Limit: 2, Page: 2})
	assert.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, "article-2", page2[0].Slug)

	page3, hasMore, err := repo.List(repositories.ListFilter{Limit: 2, Page: 3})
	assert.NoError(t, err)
	assert.False(t, hasMore)
	assert.Len(t, page3, 1)
	assert.Equal(t, "article-0", page3[0].Slug)
}

func TestArticleList_UnresolvedNamesReturnEmptyPage(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")
	seedArticle(t, db, repo, alice, "only-article", time.Now(), "golang")

	for _, filter := range []repositories.ListFilter{
		{Author: "ghost"},
		{FavoritedBy: "ghost"},
		{Tag: "no-such-tag"},
	} {
		articles, hasMore, err := repo.List(filter)
		assert.NoError(t, err)
		assert.Empty(t, articles)
		assert.False(t, hasMore)
	}
}

func TestArticleList_TagFilterCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	now := time.Now()
	seedArticle(t, db, repo, alice, "tagged-article", now, "Golang")
	seedArticle(t, db, repo, alice, "untagged-article", now)

	articles, _, err := repo.List(repositories.ListFilter{Tag: "goLANG"})
	assert.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, "tagged-article", articles[0].Slug)
}

func TestArticleList_FavoritedByAndFollowing(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	edges := repositories.NewGORMEdgeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	now := time.Now()
	byAlice := seedArticle(t, db, repo, alice, "by-alice", now)
	seedArticle(t, db, repo, bob, "by-bob", now.Add(time.Minute))

	assert.NoError(t, edges.Add(repositories.EdgeFavorite, carol.ID, byAlice.ID))
	assert.NoError(t, edges.Add(repositories.EdgeFollow, carol.ID, alice.ID))

	favorited, _, err := repo.List(repositories.ListFilter{FavoritedBy: "carol"})
	assert.NoError(t, err)
	assert.Len(t, favorited, 1)
	assert.Equal(t, "by-alice", favorited[0].Slug)

	feed, _, err := repo.List(repositories.ListFilter{Following: true, ViewerID: carol.ID})
	assert.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, "by-alice", feed[0].Slug)
}

func TestArticleList_BookmarkedOnly(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	edges := repositories.NewGORMEdgeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	now := time.Now()
	kept := seedArticle(t, db, repo, alice, "kept-article", now)
	seedArticle(t, db, repo, alice, "skipped-article", now.Add(time.Minute))

	assert.NoError(t, edges.Add(repositories.EdgeBookmark, bob.ID, kept.ID))

	articles, _, err := repo.List(repositories.ListFilter{Bookmarked: true, ViewerID: bob.ID})
	assert.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, "kept-article", articles[0].Slug)
}

func TestArticleList_SearchMatchesTitleAndDescription(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	now := time.Now()
	first := &models.Article{
		Slug: "about-gophers", Title: "All About Gophers",
		Description: "rodents mostly", AuthorID: alice.ID, CreatedAt: now,
	}
	assert.NoError(t, repo.Create(first, nil))
	second := &models.Article{
		Slug: "about-cats", Title: "All About Cats",
		Description: "gopher-free zone", AuthorID: alice.ID, CreatedAt: now,
	}
	assert.NoError(t, repo.Create(second, nil))

	articles, _, err := repo.List(repositories.ListFilter{Search: "GOPHER"})
	assert.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestArticleList_CursorBoundsCreatedAt(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	alice := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		seedArticle(t, db, repo, alice, fmt.Sprintf("article-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	cursor := base.Add(2 * time.Minute)
	articles, _, err := repo.List(repositories.ListFilter{Cursor: &cursor})
	assert.NoError(t, err)
	assert.Len(t, articles, 3)
	assert.Equal(t, "article-2", articles[0].Slug)
}

func TestArticleList_TopOrdersByFavoriteCount(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	edges := repositories.NewGORMEdgeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	cold := seedArticle(t, db, repo, alice, "cold-article", base.Add(2*time.Minute))
	hot := seedArticle(t, db, repo, alice, "hot-article", base)

	assert.NoError(t, edges.Add(repositories.EdgeFavorite, bob.ID, hot.ID))
	assert.NoError(t, edges.Add(repositories.EdgeFavorite, carol.ID, hot.ID))
	assert.NoError(t, edges.Add(repositories.EdgeFavorite, bob.ID, cold.ID))

	articles, _, err := repo.List(repositories.ListFilter{Order: repositories.OrderTop})
	assert.NoError(t, err)
	assert.Equal(t, "hot-article", articles[0].Slug)
	assert.Equal(t, "cold-article", articles[1].Slug)
}

func TestArticleDelete_CascadesEdgesAndComments(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMArticleRepository(db)
	edges := repositories.NewGORMEdgeRepository(db)
	comments := repositories.NewGORMCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	article := seedArticle(t, db, repo, alice, "doomed-article", time.Now(), "golang")
	assert.NoError(t, edges.Add(repositories.EdgeFavorite, bob.ID, article.ID))
	assert.NoError(t, edges.Add(repositories.EdgeBookmark, bob.ID, article.ID))
	assert.NoError(t, comments.Create(&models.Comment{
		ID: uuid.New().String(), Body: "so long", AuthorID: bob.ID, ArticleID: article.ID,
	}))

	assert.NoError(t, repo.Delete(article))

	_, err := repo.GetBySlug("doomed-article")
	assert.ErrorIs(t, err, models.ErrNotFound)

	count, err := edges.Count(repositories.EdgeFavorite, article.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	remaining, err := comments.ListByArticle(article.ID)
	assert.NoError(t, err)
	assert.Empty(t, remaining)

	// orphaned tags survive the delete
	tags, err := repo.AllTags(20)
	assert.NoError(t, err)
	assert.Contains(t, tags, "golang")
}

func TestEdgeToggle_Idempotent(t *testing.T) {
	db := setupDB(t)
	articleRepo := repositories.NewGORMArticleRepository(db)
	edges := repositories.NewGORMEdgeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	article := seedArticle(t, db, articleRepo, alice, "toggled-article", time.Now())

	assert.NoError(t, edges.Add(repositories.EdgeFavorite, bob.ID, article.ID))
	assert.NoError(t, edges.Add(repositories.EdgeFavorite, bob.ID, article.ID))

	count, err := edges.Count(repositories.EdgeFavorite, article.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	exists, err := edges.Exists(repositories.EdgeFavorite, bob.ID, article.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, edges.Remove(repositories.EdgeFavorite, bob.ID, article.ID))
	assert.NoError(t, edges.Remove(repositories.EdgeFavorite, bob.ID, article.ID))

	count, err = edges.Count(repositories.EdgeFavorite, article.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserSearch_MatchesUsernameAndBio(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMUserRepository(db)
	alice := seedUser(t, db, "alice")
	alice.Bio = "resident gopher wrangler"
	assert.NoError(t, repo.Update(alice))
	seedUser(t, db, "gopherfan")
	seedUser(t, db, "catperson")

	users, err := repo.Search("gopher", 20)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}
