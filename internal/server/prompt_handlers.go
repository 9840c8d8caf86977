package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPrompt handles GET /prompt and returns today's drawing prompt. Every
// caller sees the same prompt for the same calendar day.
func (s *Server) GetPrompt(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"prompt": s.rotator.Today(),
	})
}
