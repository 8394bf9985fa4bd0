package handlers

import (
	"olympusblog/internal/models"
	"olympusblog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	articleService *services.ArticleService
	validate       *validator.Validate
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the article routes with the Fiber app. The fixed
// paths come before the :slug routes so they are matched first.
func (h *ArticleHandler) RegisterRoutes(router fiber.Router, authRequired, authOptional fiber.Handler) {
	router.Post("/articles", authRequired, h.HandleCreateArticle)
	router.Get("/articles", authOptional, h.HandleGetArticles)
	router.Get("/articles/tags", h.HandleGetTags)
	router.Get("/articles/feed", authRequired, h.HandleGetFeed)
	router.Get("/articles/bookmarked", authRequired, h.HandleGetBookmarked)
	router.Get("/articles/:slug", authOptional, h.HandleGetArticle)
	router.Put("/articles/:slug", authRequired, h.HandleUpdateArticle)
	router.Delete("/articles/:slug", authRequired, h.HandleDeleteArticle)
	router.Post("/articles/:slug/favorite", authRequired, h.HandleFavorite)
	router.Delete("/articles/:slug/favorite", authRequired, h.HandleUnfavorite)
	router.Post("/articles/:slug/bookmark", authRequired, h.HandleBookmark)
	router.Delete("/articles/:slug/bookmark", authRequired, h.HandleUnbookmark)
}

// HandleCreateArticle creates an article from a multipart form.
func (h *ArticleHandler) HandleCreateArticle(c *fiber.Ctx) error {
	image, err := formFile(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image upload",
		})
	}

	var req models.NewArticleRequest
	if title := formValue(c, "title"); title != nil {
		req.Title = *title
	}
	if description := formValue(c, "description"); description != nil {
		req.Description = *description
	}
	if body := formValue(c, "body"); body != nil {
		req.Body = *body
	}
	req.TagList = formValues(c, "tagList")
	req.Image = image

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	article, err := h.articleService.CreateArticle(currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleGetArticles lists articles with the optional feed filters applied.
func (h *ArticleHandler) HandleGetArticles(c *fiber.Ctx) error {
	list, err := h.articleService.ListArticles(currentUserID(c), parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// HandleGetFeed lists articles authored by users the viewer follows.
func (h *ArticleHandler) HandleGetFeed(c *fiber.Ctx) error {
	list, err := h.articleService.GetFeed(currentUserID(c), parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// HandleGetBookmarked lists articles the viewer bookmarked.
func (h *ArticleHandler) HandleGetBookmarked(c *fiber.Ctx) error {
	list, err := h.articleService.GetBookmarked(currentUserID(c), parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// HandleGetArticle returns a single article by slug.
func (h *ArticleHandler) HandleGetArticle(c *fiber.Ctx) error {
	article, err := h.articleService.GetArticle(c.Params("slug"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleGetTags returns up to 20 tag names.
func (h *ArticleHandler) HandleGetTags(c *fiber.Ctx) error {
	tags, err := h.articleService.AllTags()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// HandleUpdateArticle applies a partial multipart update; author only.
func (h *ArticleHandler) HandleUpdateArticle(c *fiber.Ctx) error {
	image, err := formFile(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image upload",
		})
	}

	req := models.UpdateArticleRequest{
		Title:       formValue(c, "title"),
		Description: formValue(c, "description"),
		Body:        formValue(c, "body"),
		TagList:     formValues(c, "tagList"),
		Image:       image,
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	article, err := h.articleService.UpdateArticle(currentUserID(c), c.Params("slug"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleDeleteArticle deletes the author's article.
func (h *ArticleHandler) HandleDeleteArticle(c *fiber.Ctx) error {
	article, err := h.articleService.DeleteArticle(currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleFavorite adds the viewer's favorite edge.
func (h *ArticleHandler) HandleFavorite(c *fiber.Ctx) error {
	article, err := h.articleService.FavoriteArticle(currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleUnfavorite removes the viewer's favorite edge.
func (h *ArticleHandler) HandleUnfavorite(c *fiber.Ctx) error {
	article, err := h.articleService.UnfavoriteArticle(currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleBookmark adds the viewer's bookmark edge.
func (h *ArticleHandler) HandleBookmark(c *fiber.Ctx) error {
	article, err := h.articleService.BookmarkArticle(currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// HandleUnbookmark removes the viewer's bookmark edge.
func (h *ArticleHandler) HandleUnbookmark(c *fiber.Ctx) error {
	article, err := h.articleService.UnbookmarkArticle(currentUserID(c), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}
