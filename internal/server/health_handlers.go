package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// LivenessCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UnixMilli(),
	})
}

// ReadinessCheck godoc
// @Summary Readiness probe
// @Description Verifies the database connection; Redis is optional and only reported.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	checks := fiber.Map{"database": "ok", "redis": "disabled"}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}

	if s.redis != nil {
		checks["redis"] = "ok"
		if err := s.redis.Ping(c.UserContext()).Err(); err != nil {
			checks["redis"] = "unreachable"
		}
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"status": checks})
}
