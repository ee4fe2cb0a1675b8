package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users?search=&current_user_id=
func (s *Server) GetUsers(c *fiber.Ctx) error {
	currentUserID, err := s.queryUserID(c, "current_user_id")
	if err != nil {
		return nil
	}

	search := strings.TrimSpace(c.Query("search"))

	users, svcErr := s.userService.SearchUsers(c.Context(), search, currentUserID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"users": users})
}
