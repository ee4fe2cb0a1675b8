package server

import (
	"time"

	"tripsync/internal/models"
	"tripsync/internal/repository"
	"tripsync/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseEventTime accepts RFC 3339 timestamps or bare dates.
func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// GetEvents handles GET /api/calendar/events?user_id=&group_id=&start_date=&end_date=
func (s *Server) GetEvents(c *fiber.Ctx) error {
	userID, err := s.queryUserID(c, "user_id")
	if err != nil {
		return nil
	}

	var filter repository.EventFilter
	if groupID := c.QueryInt("group_id"); groupID > 0 {
		gid := uint(groupID)
		filter.GroupID = &gid
	}
	if raw := c.Query("start_date"); raw != "" {
		t, parseErr := parseEventTime(raw)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid start_date"))
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, parseErr := parseEventTime(raw)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid end_date"))
		}
		filter.EndDate = &t
	}

	events, svcErr := s.eventService.ListEvents(c.Context(), userID, filter)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"events": events})
}

// CreateEvent handles POST /api/calendar/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		Location    string `json:"location"`
		PlaceID     *uint  `json:"place_id"`
		GroupID     uint   `json:"group_id"`
		CreatedBy   uint   `json:"created_by"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" || req.StartDate == "" || req.GroupID == 0 || req.CreatedBy == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title, start_date, group_id and created_by are required"))
	}

	startDate, err := parseEventTime(req.StartDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid start_date"))
	}

	var endDate *time.Time
	if req.EndDate != "" {
		t, parseErr := parseEventTime(req.EndDate)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid end_date"))
		}
		endDate = &t
	}

	event, svcErr := s.eventService.CreateEvent(c.Context(), service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		PlaceID:     req.PlaceID,
		GroupID:     req.GroupID,
		CreatedBy:   req.CreatedBy,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /api/calendar/events/:id
//
// Only fields present in the body are applied; the creator check happens in
// the service against the row as it exists at update time.
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id", "event ID")
	if err != nil {
		return nil
	}

	var req struct {
		UserID      uint    `json:"user_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
		Location    *string `json:"location"`
		PlaceID     *uint   `json:"place_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	patch := service.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		PlaceID:     req.PlaceID,
	}
	if req.StartDate != nil {
		t, parseErr := parseEventTime(*req.StartDate)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid start_date"))
		}
		patch.StartDate = &t
	}
	if req.EndDate != nil {
		t, parseErr := parseEventTime(*req.EndDate)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid end_date"))
		}
		patch.EndDate = &t
	}

	event, svcErr := s.eventService.UpdateEvent(c.Context(), eventID, req.UserID, patch)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/calendar/events/:id?user_id=
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id", "event ID")
	if err != nil {
		return nil
	}
	userID, err := s.queryUserID(c, "user_id")
	if err != nil {
		return nil
	}

	if svcErr := s.eventService.DeleteEvent(c.Context(), eventID, userID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}

// GetEventParticipants handles GET /api/calendar/events/:id/participants
func (s *Server) GetEventParticipants(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id", "event ID")
	if err != nil {
		return nil
	}

	participants, svcErr := s.eventService.Participants(c.Context(), eventID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"participants": participants})
}

// SetEventParticipation handles POST /api/calendar/events/:id/participants
func (s *Server) SetEventParticipation(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id", "event ID")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"user_id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	svcErr := s.eventService.SetParticipantStatus(c.Context(), eventID, req.UserID,
		models.ParticipantStatus(req.Status))
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Participation status updated"})
}

// GetCalendarGroups handles GET /api/calendar/groups/:userId
func (s *Server) GetCalendarGroups(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}

	groups, svcErr := s.groupService.CalendarGroupsForUser(c.Context(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"groups": groups})
}
