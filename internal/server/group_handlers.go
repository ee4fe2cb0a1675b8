package server

import (
	"tripsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /api/groups
//
// The creator is added as the first member unconditionally; listed members are
// added only when an accepted friendship with the creator exists. Unknown ids
// and non-friends are skipped, and the response reports who actually made it in.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		GroupName string `json:"group_name"`
		CreatedBy uint   `json:"created_by"`
		Members   []uint `json:"members"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.GroupName == "" || req.CreatedBy == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("group_name and created_by are required"))
	}

	result, err := s.groupService.CreateGroup(c.Context(), req.GroupName, req.CreatedBy, req.Members)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// InviteToGroup handles POST /api/groups/invite
func (s *Server) InviteToGroup(c *fiber.Ctx) error {
	var req struct {
		GroupID  uint `json:"group_id"`
		UserID   uint `json:"user_id"`
		FriendID uint `json:"friend_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.GroupID == 0 || req.UserID == 0 || req.FriendID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("group_id, user_id and friend_id are required"))
	}

	result, err := s.groupService.InviteMember(c.Context(), req.GroupID, req.UserID, req.FriendID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": string(result)})
}

// LeaveGroup handles POST /api/groups/leave
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	var req struct {
		GroupID uint `json:"group_id"`
		UserID  uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.GroupID == 0 || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("group_id and user_id are required"))
	}

	if err := s.groupService.LeaveGroup(c.Context(), req.GroupID, req.UserID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Left group successfully"})
}

// DeleteGroup handles DELETE /api/groups/:id
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id", "group ID")
	if err != nil {
		return nil
	}

	if svcErr := s.groupService.DeleteGroup(c.Context(), groupID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Group deleted successfully"})
}

// GetGroups handles GET /api/groups?user_id=
func (s *Server) GetGroups(c *fiber.Ctx) error {
	userID, err := s.queryUserID(c, "user_id")
	if err != nil {
		return nil
	}

	groups, svcErr := s.groupService.GroupsForUser(c.Context(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"groups": groups})
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id", "group ID")
	if err != nil {
		return nil
	}

	group, svcErr := s.groupService.GroupInfo(c.Context(), groupID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(group)
}

// GetGroupMembers handles GET /api/groups/:id/members
func (s *Server) GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id", "group ID")
	if err != nil {
		return nil
	}

	members, svcErr := s.groupService.Members(c.Context(), groupID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"members": members})
}
