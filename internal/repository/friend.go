package repository

import (
	"context"
	"errors"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship ledger operations
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetIncomingPending(ctx context.Context, userID uint) ([]models.Friendship, error)
	AcceptByID(ctx context.Context, friendshipID uint) (int64, error)
	DeletePendingByID(ctx context.Context, friendshipID uint) (int64, error)
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Addressee").First(&friendship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetBetweenUsers looks up the single edge for an unordered user pair,
// checking both orientations. Returns (nil, nil) when no edge exists.
func (r *friendRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship

	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No friendship exists
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetFriends returns the other party of every accepted edge touching userID.
// The two orientations are merged as a set union keyed by user ID; the ledger's
// one-edge-per-pair invariant makes duplicates impossible in practice, but the
// union keeps the result well-defined even against corrupt data.
func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var sent []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.addressee_id").
		Where("f.requester_id = ? AND f.status = ?", userID, models.FriendshipStatusAccepted).
		Find(&sent).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var received []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.requester_id").
		Where("f.addressee_id = ? AND f.status = ?", userID, models.FriendshipStatusAccepted).
		Find(&received).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[uint]bool, len(sent)+len(received))
	friends := make([]models.User, 0, len(sent)+len(received))
	for _, u := range append(sent, received...) {
		if !seen[u.ID] {
			seen[u.ID] = true
			friends = append(friends, u)
		}
	}
	return friends, nil
}

func (r *friendRepository) GetIncomingPending(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendships, nil
}

// AcceptByID sets the edge to accepted regardless of its current status and
// reports the number of rows affected. Zero rows means the id does not exist.
func (r *friendRepository) AcceptByID(ctx context.Context, friendshipID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ?", friendshipID).
		Update("status", models.FriendshipStatusAccepted)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// DeletePendingByID deletes the edge only while it is still pending; an
// accepted edge cannot be rejected through this path.
func (r *friendRepository) DeletePendingByID(ctx context.Context, friendshipID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", friendshipID, models.FriendshipStatusPending).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, models.FriendshipStatusAccepted).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
