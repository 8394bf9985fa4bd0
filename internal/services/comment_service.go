package services

import (
	"fmt"
	"time"

	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
)

// CommentService handles comments on articles.
type CommentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
	edgeRepo    repositories.EdgeRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	articleRepo repositories.ArticleRepository,
	userRepo repositories.UserRepository,
	edgeRepo repositories.EdgeRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		edgeRepo:    edgeRepo,
	}
}

// AddComment posts a comment on the slug's article.
func (s *CommentService) AddComment(userID, slug string, req models.NewCommentRequest) (*models.CommentResponse, error) {
	author, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:      req.Body,
		AuthorID:  author.ID,
		ArticleID: article.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.buildResponse(comment, userID)
}

// GetComments lists an article's comments projected relative to the viewer.
func (s *CommentService) GetComments(slug, viewerID string) ([]models.CommentResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByArticle(article.ID)
	if err != nil {
		return nil, err
	}
	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		resp, err := s.buildResponse(&comments[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// DeleteComment removes a comment. The comment must belong to the slug's
// article and only its author may delete it.
func (s *CommentService) DeleteComment(userID, slug, commentID string) (*models.CommentResponse, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.ArticleID != article.ID {
		return nil, fmt.Errorf("comment %s does not belong to article %s: %w", commentID, slug, models.ErrNotFound)
	}
	if comment.AuthorID != userID {
		return nil, fmt.Errorf("not the comment author: %w", models.ErrForbidden)
	}
	resp, err := s.buildResponse(comment, userID)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return nil, err
	}
	return resp, nil
}

// buildResponse projects a comment plus the viewer into the response view.
func (s *CommentService) buildResponse(comment *models.Comment, viewerID string) (*models.CommentResponse, error) {
	author, err := s.userRepo.GetByID(comment.AuthorID)
	if err != nil {
		return nil, err
	}
	authorProfile, err := projectProfile(s.edgeRepo, author, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
		Author:    authorProfile,
	}, nil
}
