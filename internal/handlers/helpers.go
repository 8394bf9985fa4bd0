package handlers

import (
	"errors"
	"io"
	"log"
	"time"
	"unicode"

	"olympusblog/internal/middleware"
	"olympusblog/internal/models"
	"olympusblog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user id placed in the locals by the
// auth middleware, or "" for anonymous requests.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// respondError translates the service error taxonomy into HTTP status codes.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(validationErr)
	case errors.Is(err, models.ErrNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		return c.SendStatus(fiber.StatusForbidden)
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationError{
			Errors: []models.FieldError{{Field: "user", Message: "already exists"}},
		})
	case errors.Is(err, models.ErrUnauthenticated):
		return c.SendStatus(fiber.StatusUnauthorized)
	case errors.Is(err, models.ErrTokenExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "token expired",
		})
	default:
		log.Printf("Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "something went wrong",
		})
	}
}

// formatValidationErrors converts validator failures into the field-level
// error list clients expect.
func formatValidationErrors(err error) *models.ValidationError {
	var out models.ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			out.Errors = append(out.Errors, models.FieldError{
				Field:   lowerFirst(e.Field()),
				Message: "failed on the '" + e.Tag() + "' constraint",
			})
		}
	} else {
		out.Errors = append(out.Errors, models.FieldError{Field: "body", Message: err.Error()})
	}
	return &out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// parseListFilter reads the feed query parameters. The cursor is an RFC 3339
// timestamp boundary; a malformed cursor is ignored rather than rejected.
func parseListFilter(c *fiber.Ctx) repositories.ListFilter {
	filter := repositories.ListFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Search:      c.Query("search"),
		Limit:       c.QueryInt("limit", 10),
		Page:        c.QueryInt("p", 0),
		Order:       c.Query("order"),
	}
	if cursor := c.Query("cursor"); cursor != "" {
		if t, err := time.Parse(time.RFC3339, cursor); err == nil {
			filter.Cursor = &t
		}
	}
	return filter
}

// formFile reads an uploaded file's bytes, returning nil when the part is
// absent.
func formFile(c *fiber.Ctx, name string) ([]byte, error) {
	header, err := c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formValue returns a pointer to the multipart form value, or nil when the
// key was not sent at all. Partial updates rely on that distinction.
func formValue(c *fiber.Ctx, name string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// formValues returns all multipart values for the key, nil when absent.
// Clients send each tag as its own tagList part.
func formValues(c *fiber.Ctx, name string) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[name]
	if !ok {
		return nil
	}
	return values
}

// setSessionCookie attaches the signed session token to the response.
func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}
