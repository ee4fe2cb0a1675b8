package server

import (
	"tripsync/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/request
//
// A request against an edge pending in the other direction is treated as
// mutual consent and accepts it; the response message says which happened.
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	var req struct {
		UserID   uint `json:"user_id"`
		FriendID uint `json:"friend_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.FriendID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id and friend_id are required"))
	}

	result, err := s.friendService.SendOrAcceptRequest(c.Context(), req.UserID, req.FriendID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if result.Created() {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"message": string(result)})
}

// AcceptFriendRequest handles POST /api/friends/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	var req struct {
		RequestID uint `json:"request_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.RequestID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("request_id is required"))
	}

	if err := s.friendService.AcceptRequest(c.Context(), req.RequestID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend request accepted"})
}

// RejectFriendRequest handles POST /api/friends/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	var req struct {
		RequestID uint `json:"request_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.RequestID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("request_id is required"))
	}

	if err := s.friendService.RejectRequest(c.Context(), req.RequestID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}

// GetIncomingRequests handles GET /api/friends/incoming/:userId
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	requests, svcErr := s.friendService.IncomingRequests(c.Context(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"friend_requests": requests})
}

// GetFriends handles GET /api/friends/:userId
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	friends, svcErr := s.friendService.Friends(c.Context(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"friends": friends})
}
