package handlers

import (
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles admin login
// @Summary Login admin
// @Description Authenticate an HR admin and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return handleError(c, err, "Failed to login")
	}
	return response.OK(c, result)
}

// Me returns the logged-in admin
// @Summary Current admin
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Admin
// @Failure 401 {object} response.ErrorBody
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	adminID, ok := c.Locals("adminID").(string)
	if !ok || adminID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	admin, err := h.authService.Me(c.UserContext(), adminID)
	if err != nil {
		return handleError(c, err, "Failed to get admin")
	}
	return response.OK(c, admin)
}
