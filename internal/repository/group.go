package repository

import (
	"context"
	"errors"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group and membership operations.
// Memberships are keyed by username, matching the legacy schema.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	Delete(ctx context.Context, groupID uint) error
	AddMember(ctx context.Context, groupID uint, username string) error
	RemoveMember(ctx context.Context, groupID uint, username string) (int64, error)
	RemoveAllMembers(ctx context.Context, groupID uint) error
	IsMember(ctx context.Context, groupID uint, username string) (bool, error)
	ListMembers(ctx context.Context, groupID uint) ([]models.User, error)
	ListGroupsForUsername(ctx context.Context, username string) ([]models.Group, error)
	ListGroupsForUsernameByName(ctx context.Context, username string) ([]models.Group, error)
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) Delete(ctx context.Context, groupID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Group{}, groupID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID uint, username string) error {
	member := models.GroupMember{GroupID: groupID, Username: username}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID uint, username string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND username = ?", groupID, username).
		Delete(&models.GroupMember{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *groupRepository) RemoveAllMembers(ctx context.Context, groupID uint) error {
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&models.GroupMember{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID uint, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND username = ?", groupID, username).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListMembers returns member identities ordered by first then last name so the
// display order is deterministic.
func (r *groupRepository) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN group_members gm ON gm.username = users.username").
		Where("gm.group_id = ?", groupID).
		Order("users.first_name, users.last_name").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *groupRepository) ListGroupsForUsername(ctx context.Context, username string) ([]models.Group, error) {
	return r.listGroupsForUsername(ctx, username, "")
}

// ListGroupsForUsernameByName is the name-ordered variant used by the calendar
// group picker.
func (r *groupRepository) ListGroupsForUsernameByName(ctx context.Context, username string) ([]models.Group, error) {
	return r.listGroupsForUsername(ctx, username, "chat_groups.name")
}

func (r *groupRepository) listGroupsForUsername(ctx context.Context, username, order string) ([]models.Group, error) {
	var groups []models.Group
	query := r.db.WithContext(ctx).
		Table("chat_groups").
		Joins("JOIN group_members gm ON chat_groups.id = gm.group_id").
		Where("gm.username = ?", username)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&groups).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}
