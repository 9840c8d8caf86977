package server

import (
	"doodleboard/internal/models"
	"doodleboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitDoodle handles POST /doodle. The client sends the canvas content as
// a base64 PNG data URI; the prompt defaults to today's when omitted.
func (s *Server) SubmitDoodle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		DoodleURL string `json:"doodleUrl"`
		Prompt    string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.DoodleURL == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Doodle image is required"))
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = s.rotator.Today()
	}

	doodle, err := s.doodleSvc.Submit(ctx, service.SubmitDoodleInput{
		UserID:    userID,
		ImageData: req.DoodleURL,
		Prompt:    prompt,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(doodle)
}

// GetDoodles handles GET /doodles: the global gallery, newest first, with
// the liked flag computed for the caller.
func (s *Server) GetDoodles(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID := c.Locals("userID").(uint)

	doodles, err := s.doodleSvc.List(ctx, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if doodles == nil {
		doodles = []*models.Doodle{}
	}

	return c.JSON(doodles)
}
