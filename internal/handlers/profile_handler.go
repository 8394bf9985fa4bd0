package handlers

import (
	"olympusblog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for profiles and follows.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, authRequired, authOptional fiber.Handler) {
	router.Get("/profiles", authOptional, h.HandleGetProfiles)
	router.Get("/profiles/:username", authOptional, h.HandleGetProfile)
	router.Post("/profiles/:username/follow", authRequired, h.HandleFollow)
	router.Delete("/profiles/:username/follow", authRequired, h.HandleUnfollow)
}

// HandleGetProfiles lists profiles matching the optional search term.
func (h *ProfileHandler) HandleGetProfiles(c *fiber.Ctx) error {
	profiles, err := h.profileService.GetProfiles(c.Query("search"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// HandleGetProfile returns a single profile projected for the viewer.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.profileService.GetProfile(c.Params("username"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleFollow makes the viewer follow the named user.
func (h *ProfileHandler) HandleFollow(c *fiber.Ctx) error {
	profile, err := h.profileService.FollowProfile(c.Params("username"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// HandleUnfollow makes the viewer unfollow the named user.
func (h *ProfileHandler) HandleUnfollow(c *fiber.Ctx) error {
	profile, err := h.profileService.UnfollowProfile(c.Params("username"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
