package handlers

import (
	"strconv"

	"edumigrate/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// sendResult renders a service Result with its embedded status code
func sendResult(c *fiber.Ctx, r *services.Result) error {
	return c.Status(r.StatusCode).JSON(r)
}

// currentUser reads the authenticated identity set by the auth middleware
func currentUser(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	userType, ok := c.Locals("userType").(string)
	return userID, userType, ok
}

// paramID parses a positive uint path parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
