package server

import (
	"foms/internal/cache"
	"foms/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListStatuses godoc
// @Summary List the status catalog
// @Tags statuses
// @Produce json
// @Success 200 {array} models.Status
// @Router /api/statuses [get]
func (s *Server) ListStatuses(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var rows []models.Status
	err := cache.Aside(ctx, cache.StatusCatalogKey, &rows, cache.StatusCatalogTTL, func() error {
		loaded, loadErr := s.statusRepo.List(ctx)
		if loadErr != nil {
			return loadErr
		}
		rows = loaded
		return nil
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(rows)
}

// SeedStatuses godoc
// @Summary Seed the status catalog
// @Description Inserts the four catalog statuses. Already-present codes are left untouched, so the call is safe to repeat.
// @Tags statuses
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/statuses/seed [post]
func (s *Server) SeedStatuses(c *fiber.Ctx) error {
	if err := s.statusRepo.Seed(c.UserContext()); err != nil {
		return models.RespondWithAppError(c, err)
	}

	rows, err := s.statusRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(rows)})
}
