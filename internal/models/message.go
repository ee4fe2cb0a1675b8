package models

import "time"

// Message is one append-only entry in a group's message log. There is no
// update or delete path; rows only disappear when their group is deleted.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	Sender    string    `gorm:"not null" json:"sender"`
	Body      string    `gorm:"column:message;not null" json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
