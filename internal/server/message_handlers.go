package server

import (
	"tripsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostMessage handles POST /api/messages
func (s *Server) PostMessage(c *fiber.Ctx) error {
	var req struct {
		GroupID uint   `json:"group_id"`
		Sender  string `json:"sender"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.GroupID == 0 || req.Sender == "" || req.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("group_id, sender and message are required"))
	}

	if err := s.messageService.PostMessage(c.Context(), req.GroupID, req.Sender, req.Message); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message sent successfully"})
}

// GetMessages handles GET /api/messages/:groupId?user_id=
func (s *Server) GetMessages(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "groupId", "group ID")
	if err != nil {
		return nil
	}
	userID, err := s.queryUserID(c, "user_id")
	if err != nil {
		return nil
	}

	messages, svcErr := s.messageService.FetchMessages(c.Context(), groupID, userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"messages": messages})
}
