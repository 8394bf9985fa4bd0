package handlers

import (
	"log"

	"olympusblog/internal/models"
	"olympusblog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/users", h.HandleRegister)
	router.Post("/users/login", h.HandleLogin)
	router.Post("/users/logout", authRequired, h.HandleLogout)
	router.Post("/users/forgot-password", h.HandleForgotPassword)
	router.Post("/users/reset-password", h.HandleResetPassword)
	router.Put("/users/change-password", authRequired, h.HandleChangePassword)
	router.Get("/user", authRequired, h.HandleCurrentUser)
	router.Put("/user", authRequired, h.HandleUpdateUser)
}

// HandleRegister handles new account registration and logs the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	user, err := h.authService.Register(req)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin authenticates by email and password and sets the session
// cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	user, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, token)

	return c.JSON(user)
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.SendStatus(fiber.StatusOK)
}

// HandleCurrentUser returns the logged-in account.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser applies a partial multipart update to the account.
func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	image, err := formFile(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image upload",
		})
	}
	req := models.UpdateUserRequest{
		Username: formValue(c, "username"),
		Email:    formValue(c, "email"),
		Bio:      formValue(c, "bio"),
		Image:    image,
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	user, err := h.authService.UpdateUser(currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleChangePassword changes the logged-in user's password.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	user, err := h.authService.ChangePassword(currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleForgotPassword issues a reset token and queues the reset email.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	if err := h.authService.ForgotPassword(c.Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(true)
}

// HandleResetPassword redeems a mailed reset token.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formatValidationErrors(err))
	}

	user, err := h.authService.ResetPassword(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
