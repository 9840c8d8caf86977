package server

import (
	"doodleboard/internal/models"
	"doodleboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikeDoodle handles POST /doodle/:id/like and returns the updated count.
func (s *Server) LikeDoodle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	doodleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.engagement.Like(ctx, doodleID, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"likes": likes,
	})
}

// CreateComment handles POST /doodle/:id/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	doodleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.engagement.Comment(ctx, service.CommentInput{
		UserID:   userID,
		DoodleID: doodleID,
		Content:  req.Comment,
	})
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /doodle/:id/comments, oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()

	doodleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	comments, svcErr := s.engagement.ListComments(ctx, doodleID, page.Limit, page.Offset)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return c.JSON(comments)
}
