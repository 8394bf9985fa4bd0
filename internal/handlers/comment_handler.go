package handlers

import (
	"olympusblog/internal/models"
	"olympusblog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for article comments.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the comment routes with the Fiber app.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, authRequired, authOptional fiber.Handler) {
	router.Post("/articles/:slug/comments", authRequired, h.HandleAddComment)
	router.Get("/articles/:slug/comments", authOptional, h.HandleGetComments)
	router.Delete("/articles/:slug/comments/:id", authRequired, h.HandleDeleteComment)
}

// HandleAddComment posts a comment on the slug's article.
func (h *CommentHandler) HandleAddComment(c *fiber.Ctx) error {
	var req models.NewCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	comment, err := h.commentService.AddComment(currentUserID(c), c.Params("slug"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleGetComments lists an article's comments.
func (h *CommentHandler) HandleGetComments(c *fiber.Ctx) error {
	comments, err := h.commentService.GetComments(c.Params("slug"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// HandleDeleteComment deletes the author's own comment.
func (h *CommentHandler) HandleDeleteComment(c *fiber.Ctx) error {
	comment, err := h.commentService.DeleteComment(currentUserID(c), c.Params("slug"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}
