package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"usersvc/internal/models"
)

// HealthHandler reports that the process is serving requests.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers {"ok":true,"ts":...}.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok": true,
		"ts": h.now().UTC().Format(models.TimestampLayout),
	})
}
