package services_test

import (
	"context"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
	"olympusblog/pkg/rabbitmq"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Search(term string, limit int) ([]models.User, error) {
	args := m.Called(term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockArticleRepository is a mock implementation of repositories.ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(article *models.Article, tagNames []string) error {
	args := m.Called(article, tagNames)
	return args.Error(0)
}

func (m *MockArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Update(article *models.Article, tagNames []string) error {
	args := m.Called(article, tagNames)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) List(filter repositories.ListFilter) ([]models.Article, bool, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Article), args.Bool(1), args.Error(2)
}

func (m *MockArticleRepository) AllTags(limit int) ([]string, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEdgeRepository is a mock implementation of repositories.EdgeRepository.
type MockEdgeRepository struct {
	mock.Mock
}

func (m *MockEdgeRepository) Exists(kind repositories.EdgeKind, subjectID, objectID string) (bool, error) {
	args := m.Called(kind, subjectID, objectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEdgeRepository) Add(kind repositories.EdgeKind, subjectID, objectID string) error {
	args := m.Called(kind, subjectID, objectID)
	return args.Error(0)
}

func (m *MockEdgeRepository) Remove(kind repositories.EdgeKind, subjectID, objectID string) error {
	args := m.Called(kind, subjectID, objectID)
	return args.Error(0)
}

func (m *MockEdgeRepository) Count(kind repositories.EdgeKind, objectID string) (int64, error) {
	args := m.Called(kind, objectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEdgeRepository) SubjectCount(kind repositories.EdgeKind, subjectID string) (int64, error) {
	args := m.Called(kind, subjectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock implementation of repositories.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByArticle(articleID string) ([]models.Comment, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenRepository) Get(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockEmailPublisher is a mock implementation of services.EmailPublisher.
type MockEmailPublisher struct {
	mock.Mock
}

func (m *MockEmailPublisher) PublishEmail(msg rabbitmq.EmailMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

// MockFileStorage is a mock implementation of storage.FileStorage.
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(data []byte, path string) (string, error) {
	args := m.Called(data, path)
	return args.String(0), args.Error(1)
}
