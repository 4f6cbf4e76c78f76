package handlers

import (
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ConfigHandler exposes the platform feature flags to the admin console
type ConfigHandler struct {
	configRepo *repositories.ConfigRepository
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configRepo *repositories.ConfigRepository) *ConfigHandler {
	return &ConfigHandler{configRepo: configRepo}
}

// List returns all platform config entries
func (h *ConfigHandler) List(c *fiber.Ctx) error {
	configs, err := h.configRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list config")
	}
	return response.Success(c, "Config retrieved successfully", configs)
}

// SetRequest represents a config write
type SetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Set creates or updates a config entry
func (h *ConfigHandler) Set(c *fiber.Ctx) error {
	var req SetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Key == "" {
		return response.BadRequest(c, "key is required")
	}

	if err := h.configRepo.Set(c.Context(), req.Key, req.Value); err != nil {
		return response.InternalServerError(c, "Failed to save config")
	}
	return response.Success(c, "Config saved successfully", fiber.Map{
		"key":   req.Key,
		"value": req.Value,
	})
}
