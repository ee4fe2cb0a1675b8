// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Users are never deleted; the ID is
// immutable and the username only changes through an out-of-scope profile edit.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName returns the display name used in system messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserSearchResult is a user row decorated with the friendship status relative
// to the searching user: "request_sent", "request_received", "friends" or "none".
type UserSearchResult struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	FriendshipStatus string `json:"friendship_status,omitempty"`
}
