package models

import "time"

// ParticipantStatus is a member's RSVP for a calendar event.
type ParticipantStatus string

const (
	// ParticipantStatusAttending marks a confirmed participant.
	ParticipantStatusAttending ParticipantStatus = "attending"
	// ParticipantStatusMaybe marks an undecided participant.
	ParticipantStatusMaybe ParticipantStatus = "maybe"
	// ParticipantStatusDeclined marks a declined invitation.
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

// ValidParticipantStatus reports whether s is one of the accepted RSVP values.
func ValidParticipantStatus(s ParticipantStatus) bool {
	switch s {
	case ParticipantStatusAttending, ParticipantStatusMaybe, ParticipantStatusDeclined:
		return true
	}
	return false
}

// CalendarEvent is an event scoped to a group. Only the creator may update or
// delete it; deletion cascades to participant rows.
type CalendarEvent struct {
	ID          uint       `gorm:"primaryKey" json:"event_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	PlaceID     *uint      `json:"place_id,omitempty"`
	GroupID     uint       `gorm:"not null;index" json:"group_id"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Group   *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Creator *User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Place   *Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}

// TableName specifies the table name for GORM
func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// EventParticipant is one user's RSVP for one event, unique per pair and
// upserted rather than duplicated.
type EventParticipant struct {
	EventID   uint              `gorm:"primaryKey;autoIncrement:false" json:"event_id"`
	UserID    uint              `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Status    ParticipantStatus `gorm:"type:varchar(20)" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (EventParticipant) TableName() string {
	return "event_participants"
}

// EventParticipantView carries an RSVP joined with the participant's identity.
type EventParticipantView struct {
	UserID    uint              `json:"user_id"`
	Status    ParticipantStatus `json:"status"`
	Username  string            `json:"username"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
}
