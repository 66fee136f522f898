package handler

import (
	"medqbank/internal/dto"
	"medqbank/internal/logger"
	"medqbank/internal/middleware"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler exposes the caller's identity. Sign-in itself happens against
// the hosted auth backend.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func unauthenticated(c *fiber.Ctx) error {
	logger.Get().Warn("Principal not found in context", zap.String("path", c.Path()))
	return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
		Code: "INVALID_USER_CONTEXT", Message: "User not found in context", Status: fiber.StatusUnauthorized,
	})
}

// Me returns the profile of the authenticated user.
// @Summary Get My Profile
// @Description Returns the profile of the logged-in user, falling back to token claims when no profile exists.
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	me, err := h.authService.GetProfile(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(me)
}

// Logout revokes the current access token.
// @Summary Logout
// @Description Denylists the bearer token until it expires.
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.authService.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
