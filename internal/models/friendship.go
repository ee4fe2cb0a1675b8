package models

import "time"

// FriendshipStatus represents the status of a friendship request.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a pending friendship request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an accepted friendship request.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed request edge between two users. At most one edge
// exists per unordered user pair; lookups always check both orientations.
// Direction is preserved because only the addressee's reciprocal request (or
// an explicit accept) transitions a pending edge to accepted.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"user_id"`
	AddresseeID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"friend_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending';index:idx_friendships_status" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// FriendRequestView is the wire shape of an incoming pending request,
// carrying the requester's identity for display.
type FriendRequestView struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	Status    FriendshipStatus `json:"status"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Username  string           `json:"username"`
}
