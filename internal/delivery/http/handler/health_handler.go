package handler

import (
	"gigboard/internal/database"
	"gigboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := map[string]string{"database": "ok"}

	if h.db == nil {
		status["database"] = "not configured"
	} else if err := h.db.Ping(c.Context()); err != nil {
		status["database"] = "unreachable"
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", status)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
