package server

import (
	"strings"

	"foms/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthSettingBody is the JSON payload for toggling a route's auth requirement.
type AuthSettingBody struct {
	RoutePath   string `json:"route_path"`
	RequireAuth bool   `json:"require_auth"`
}

// GetAuthGateState godoc
// @Summary Get the derived auth-gate state
// @Description Lists the public route paths and, when exactly one exists, names it as the default landing route for signed-out visitors.
// @Tags auth-gate
// @Produce json
// @Success 200 {object} service.AuthGateState
// @Router /api/auth-gate/state [get]
func (s *Server) GetAuthGateState(c *fiber.Ctx) error {
	state, err := s.authGateService.PublicState(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(state)
}

// ListAuthGateSettings godoc
// @Summary List all stored auth-gate settings
// @Tags auth-gate
// @Produce json
// @Success 200 {array} models.AuthSetting
// @Router /api/auth-gate/settings [get]
func (s *Server) ListAuthGateSettings(c *fiber.Ctx) error {
	rows, err := s.authGateService.List(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// SetAuthGateRequirement godoc
// @Summary Set whether a route requires sign-in
// @Tags auth-gate
// @Accept json
// @Produce json
// @Param setting body AuthSettingBody true "Route path and its auth requirement"
// @Success 200 {object} AuthSettingBody
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth-gate/settings [put]
func (s *Server) SetAuthGateRequirement(c *fiber.Ctx) error {
	var body AuthSettingBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}

	body.RoutePath = strings.TrimSpace(body.RoutePath)
	if body.RoutePath == "" {
		return models.RespondWithAppError(c,
			models.NewValidationError("route_path is required"))
	}

	if err := s.authGateService.Set(c.UserContext(), body.RoutePath, body.RequireAuth); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(body)
}
