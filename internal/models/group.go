package models

import "time"

// Group is a chat group owning a message log and calendar events.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table name for GORM
func (Group) TableName() string {
	return "chat_groups"
}

// GroupMember maps usernames to groups.
//
// The key is the username, not the user ID. A username rename would orphan
// these rows; this matches the legacy schema and is preserved deliberately
// rather than silently redesigned.
type GroupMember struct {
	GroupID   uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Username  string    `gorm:"primaryKey" json:"username"`
	CreatedAt time.Time `json:"created_at"`

	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// TableName specifies the table name for GORM
func (GroupMember) TableName() string {
	return "group_members"
}
