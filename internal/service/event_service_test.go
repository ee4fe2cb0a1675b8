package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripsync/internal/models"
	"tripsync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventService(db *gorm.DB) *EventService {
	return NewEventService(db,
		repository.NewEventRepository(db),
		repository.NewGroupRepository(db),
		repository.NewUserRepository(db))
}

// eventFixture creates a group with a member creator and one extra member.
func eventFixture(t *testing.T, db *gorm.DB) (creator, member, outsider *models.User, groupID uint) {
	t.Helper()

	creator = createTestUser(t, db, "Ada", "Lovelace", "ada")
	member = createTestUser(t, db, "Grace", "Hopper", "grace")
	outsider = createTestUser(t, db, "Alan", "Turing", "alan")
	makeFriends(t, db, creator.ID, member.ID)

	created, err := newGroupService(db).CreateGroup(context.Background(), "Trip", creator.ID, []uint{member.ID})
	require.NoError(t, err)
	return creator, member, outsider, created.GroupID
}

func TestCreateEvent_CreatorAutoEnrolledAttending(t *testing.T) {
	db := setupTestDB(t)
	creator, _, _, groupID := eventFixture(t, db)
	svc := newEventService(db)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, event)

	var participant models.EventParticipant
	require.NoError(t, db.Where("event_id = ? AND user_id = ?", event.ID, creator.ID).
		First(&participant).Error)
	assert.Equal(t, models.ParticipantStatusAttending, participant.Status)
}

func TestCreateEvent_NonMemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	_, _, outsider, groupID := eventFixture(t, db)
	svc := newEventService(db)

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Crash the trip",
		StartDate: time.Now(),
		GroupID:   groupID,
		CreatedBy: outsider.ID,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestUpdateEvent_CreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	creator, member, _, groupID := eventFixture(t, db)
	svc := newEventService(db)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)

	newTitle := "Gallery day"
	_, err = svc.UpdateEvent(context.Background(), event.ID, member.ID, EventPatch{Title: &newTitle})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	updated, err := svc.UpdateEvent(context.Background(), event.ID, creator.ID, EventPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Gallery day", updated.Title)
}

func TestUpdateEvent_EmptyPatchIsNoop(t *testing.T) {
	db := setupTestDB(t)
	creator, _, _, groupID := eventFixture(t, db)
	svc := newEventService(db)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEvent(context.Background(), event.ID, creator.ID, EventPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Museum day", updated.Title)
}

func TestDeleteEvent_RemovesParticipants(t *testing.T) {
	db := setupTestDB(t)
	creator, member, _, groupID := eventFixture(t, db)
	svc := newEventService(db)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetParticipantStatus(context.Background(),
		event.ID, member.ID, models.ParticipantStatusMaybe))

	// Only the creator may delete.
	err = svc.DeleteEvent(context.Background(), event.ID, member.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	require.NoError(t, svc.DeleteEvent(context.Background(), event.ID, creator.ID))

	var participantCount int64
	require.NoError(t, db.Model(&models.EventParticipant{}).
		Where("event_id = ?", event.ID).Count(&participantCount).Error)
	assert.Zero(t, participantCount)
}

func TestSetParticipantStatus_UpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	creator, member, outsider, groupID := eventFixture(t, db)
	svc := newEventService(db)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)

	var appErr *models.AppError

	// Invalid status rejected before any lookup.
	err = svc.SetParticipantStatus(context.Background(), event.ID, member.ID, "going")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// Group membership gates RSVPs.
	err = svc.SetParticipantStatus(context.Background(), event.ID, outsider.ID, models.ParticipantStatusAttending)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// First RSVP inserts, second updates the same row.
	require.NoError(t, svc.SetParticipantStatus(context.Background(),
		event.ID, member.ID, models.ParticipantStatusMaybe))
	require.NoError(t, svc.SetParticipantStatus(context.Background(),
		event.ID, member.ID, models.ParticipantStatusDeclined))

	var rows []models.EventParticipant
	require.NoError(t, db.Where("event_id = ? AND user_id = ?", event.ID, member.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ParticipantStatusDeclined, rows[0].Status)
}

func TestListEvents_ScopedToUserGroups(t *testing.T) {
	db := setupTestDB(t)
	creator, _, outsider, groupID := eventFixture(t, db)
	svc := newEventService(db)

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{
		Title:     "Museum day",
		StartDate: time.Now().AddDate(0, 0, 7),
		GroupID:   groupID,
		CreatedBy: creator.ID,
	})
	require.NoError(t, err)

	events, err := svc.ListEvents(context.Background(), creator.ID, repository.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// A user outside the group sees nothing.
	events, err = svc.ListEvents(context.Background(), outsider.ID, repository.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestListEvents_DateFilter(t *testing.T) {
	db := setupTestDB(t)
	creator, _, _, groupID := eventFixture(t, db)
	svc := newEventService(db)

	for _, days := range []int{5, 15} {
		_, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Title:     "Event",
			StartDate: time.Now().AddDate(0, 0, days),
			GroupID:   groupID,
			CreatedBy: creator.ID,
		})
		require.NoError(t, err)
	}

	cutoff := time.Now().AddDate(0, 0, 10)
	events, err := svc.ListEvents(context.Background(), creator.ID,
		repository.EventFilter{StartDate: &cutoff})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
