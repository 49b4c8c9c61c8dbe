package http

import (
	"time"

	"mailmind_server/core/agent/rag"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	store *rag.Store
}

func NewHealthHandler(store *rag.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.store != nil {
		resp["rag"] = h.store.GetStats()
	}
	return c.JSON(resp)
}
