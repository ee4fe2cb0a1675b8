package service

import (
	"context"
	"time"

	"tripsync/internal/models"
	"tripsync/internal/repository"

	"gorm.io/gorm"
)

// EventService provides calendar event business logic. It holds the gorm
// handle for the create and delete transactions (event plus participants).
type EventService struct {
	db        *gorm.DB
	eventRepo repository.EventRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewEventService returns a new EventService.
func NewEventService(db *gorm.DB, eventRepo repository.EventRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{
		db:        db,
		eventRepo: eventRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateEventInput carries the fields for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Location    string
	PlaceID     *uint
	GroupID     uint
	CreatedBy   uint
}

// CreateEvent creates an event in a group the creator belongs to. The creator
// is enrolled as a participant with status "attending" in the same
// transaction; that status choice is applied consistently everywhere.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.CalendarEvent, error) {
	creator, err := s.userRepo.GetByID(ctx, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, input.GroupID, creator.Username)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.NewForbiddenError("You are not a member of this group")
	}

	event := &models.CalendarEvent{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    input.Location,
		PlaceID:     input.PlaceID,
		GroupID:     input.GroupID,
		CreatedBy:   input.CreatedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repository.NewEventRepository(tx)
		if err := events.Create(ctx, event); err != nil {
			return err
		}
		return events.UpsertParticipant(ctx, event.ID, input.CreatedBy, models.ParticipantStatusAttending)
	})
	if err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, event.ID)
}

// EventPatch carries the optional fields of a sparse event update; only
// non-nil fields are applied.
type EventPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    *string
	PlaceID     *uint
}

// Fields converts the patch to the column map actually supplied.
func (p EventPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.StartDate != nil {
		fields["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		fields["end_date"] = *p.EndDate
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.PlaceID != nil {
		fields["place_id"] = *p.PlaceID
	}
	return fields
}

// UpdateEvent applies the supplied fields to an event owned by userID.
// An empty patch is a no-op success.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID uint, patch EventPatch) (*models.CalendarEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != userID {
		return nil, models.NewForbiddenError("Only the event creator can update it")
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return event, nil
	}

	if err := s.eventRepo.UpdateFields(ctx, eventID, fields); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// DeleteEvent removes an event owned by userID along with its participant
// rows, atomically.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID uint) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != userID {
		return models.NewForbiddenError("Only the event creator can delete it")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repository.NewEventRepository(tx)
		if err := events.DeleteParticipants(ctx, eventID); err != nil {
			return err
		}
		return events.Delete(ctx, eventID)
	})
}

// SetParticipantStatus upserts the RSVP of a member of the event's owning
// group. Membership is checked against the group at call time.
func (s *EventService) SetParticipantStatus(ctx context.Context, eventID, userID uint, status models.ParticipantStatus) error {
	if !models.ValidParticipantStatus(status) {
		return models.NewValidationError("Invalid status. Must be 'attending', 'maybe', or 'declined'")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	isMember, err := s.groupRepo.IsMember(ctx, event.GroupID, user.Username)
	if err != nil {
		return err
	}
	if !isMember {
		return models.NewForbiddenError("You must be a member of the group to participate in its events")
	}

	return s.eventRepo.UpsertParticipant(ctx, eventID, userID, status)
}

// Participants lists the RSVPs for an event joined with user identity.
func (s *EventService) Participants(ctx context.Context, eventID uint) ([]models.EventParticipantView, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListParticipants(ctx, eventID)
}

// ListEvents returns events in the user's groups, start time ascending, with
// the optional filters applied conjunctively.
func (s *EventService) ListEvents(ctx context.Context, userID uint, filter repository.EventFilter) ([]models.CalendarEvent, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListForUsername(ctx, user.Username, filter)
}
