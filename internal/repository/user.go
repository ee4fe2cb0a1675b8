// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, excludeUserID uint) ([]models.UserSearchResult, error)
	SearchWithFriendshipStatus(ctx context.Context, search string, currentUserID uint) ([]models.UserSearchResult, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessageError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessageError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, excludeUserID uint) ([]models.UserSearchResult, error) {
	var results []models.UserSearchResult
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("id, first_name || ' ' || last_name AS name, username").
		Where("id != ?", excludeUserID).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}

// SearchWithFriendshipStatus returns users matching the search term, each
// decorated with the friendship status relative to currentUserID.
func (r *userRepository) SearchWithFriendshipStatus(ctx context.Context, search string, currentUserID uint) ([]models.UserSearchResult, error) {
	pattern := "%" + search + "%"

	var results []models.UserSearchResult
	query := `
		SELECT
			u.id,
			u.first_name || ' ' || u.last_name AS name,
			u.username,
			CASE
				WHEN f.status = 'pending' AND f.requester_id = ? THEN 'request_sent'
				WHEN f.status = 'pending' AND f.addressee_id = ? THEN 'request_received'
				WHEN f.status = 'accepted' THEN 'friends'
				ELSE 'none'
			END AS friendship_status
		FROM users u
		LEFT JOIN friendships f ON
			(f.requester_id = u.id AND f.addressee_id = ?) OR
			(f.addressee_id = u.id AND f.requester_id = ?)
		WHERE (u.first_name LIKE ? OR u.last_name LIKE ? OR u.username LIKE ?)
		AND u.id != ?`

	if err := r.db.WithContext(ctx).
		Raw(query, currentUserID, currentUserID, currentUserID, currentUserID,
			pattern, pattern, pattern, currentUserID).
		Scan(&results).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return results, nil
}
