package repository

import (
	"context"
	"errors"
	"time"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// EventFilter narrows ListForUsername; all set fields apply conjunctively.
type EventFilter struct {
	GroupID   *uint
	StartDate *time.Time
	EndDate   *time.Time
}

// EventRepository defines the interface for calendar event operations
type EventRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	GetByID(ctx context.Context, id uint) (*models.CalendarEvent, error)
	UpdateFields(ctx context.Context, eventID uint, fields map[string]interface{}) error
	Delete(ctx context.Context, eventID uint) error
	ListForUsername(ctx context.Context, username string, filter EventFilter) ([]models.CalendarEvent, error)
	UpsertParticipant(ctx context.Context, eventID, userID uint, status models.ParticipantStatus) error
	ListParticipants(ctx context.Context, eventID uint) ([]models.EventParticipantView, error)
	DeleteParticipants(ctx context.Context, eventID uint) error
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Creator").
		Preload("Place").
		First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

// UpdateFields applies a sparse patch; callers pass only the supplied fields.
func (r *eventRepository) UpdateFields(ctx context.Context, eventID uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.CalendarEvent{}).
		Where("id = ?", eventID).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, eventID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.CalendarEvent{}, eventID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListForUsername returns events in groups where the username holds a
// membership row, ordered by start time ascending.
func (r *eventRepository) ListForUsername(ctx context.Context, username string, filter EventFilter) ([]models.CalendarEvent, error) {
	query := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Creator").
		Preload("Place").
		Where("group_id IN (?)",
			r.db.Model(&models.GroupMember{}).Select("group_id").Where("username = ?", username))

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.StartDate != nil {
		query = query.Where("start_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("start_date <= ?", *filter.EndDate)
	}

	var events []models.CalendarEvent
	if err := query.Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// UpsertParticipant updates the RSVP if a row for (eventID, userID) exists,
// otherwise inserts one. Never produces a second row for the pair.
func (r *eventRepository) UpsertParticipant(ctx context.Context, eventID, userID uint, status models.ParticipantStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	participant := models.EventParticipant{EventID: eventID, UserID: userID, Status: status}
	if err := r.db.WithContext(ctx).Create(&participant).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID uint) ([]models.EventParticipantView, error) {
	var participants []models.EventParticipantView
	if err := r.db.WithContext(ctx).
		Table("event_participants ep").
		Select("ep.user_id, ep.status, u.username, u.first_name, u.last_name").
		Joins("JOIN users u ON ep.user_id = u.id").
		Where("ep.event_id = ?", eventID).
		Scan(&participants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return participants, nil
}

func (r *eventRepository) DeleteParticipants(ctx context.Context, eventID uint) error {
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.EventParticipant{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
