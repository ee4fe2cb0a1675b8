package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tripsync/internal/database"
	"tripsync/internal/models"
	"tripsync/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// The transactional group and event flows need a real database; stubs cannot
// exercise commit/rollback behavior.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, first, last, username string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func makeFriends(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()

	require.NoError(t, db.Create(&models.Friendship{
		RequesterID: a,
		AddresseeID: b,
		Status:      models.FriendshipStatusAccepted,
	}).Error)
}

func newGroupService(db *gorm.DB) *GroupService {
	return NewGroupService(db, repository.NewGroupRepository(db), repository.NewUserRepository(db))
}

func TestCreateGroup_CreatorAlwaysAdded(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	svc := newGroupService(db)

	result, err := svc.CreateGroup(context.Background(), "Summer Trip", creator.ID, nil)
	require.NoError(t, err)
	assert.NotZero(t, result.GroupID)
	assert.Empty(t, result.MembersAdded)

	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ? AND username = ?", result.GroupID, "ada").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateGroup_OnlyFriendsAdded(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	friend := createTestUser(t, db, "Grace", "Hopper", "grace")
	stranger := createTestUser(t, db, "Alan", "Turing", "alan")
	makeFriends(t, db, creator.ID, friend.ID)
	svc := newGroupService(db)

	// An id with no user row is skipped, not an error.
	result, err := svc.CreateGroup(context.Background(), "Weekend",
		creator.ID, []uint{friend.ID, stranger.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, []uint{friend.ID}, result.MembersAdded)

	var memberCount int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ?", result.GroupID).Count(&memberCount).Error)
	assert.Equal(t, int64(2), memberCount)
}

func TestCreateGroup_UnknownCreator(t *testing.T) {
	db := setupTestDB(t)
	svc := newGroupService(db)

	_, err := svc.CreateGroup(context.Background(), "Ghost Group", 404, nil)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	var groupCount int64
	require.NoError(t, db.Model(&models.Group{}).Count(&groupCount).Error)
	assert.Zero(t, groupCount)
}

func TestInviteMember_Flow(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	friend := createTestUser(t, db, "Grace", "Hopper", "grace")
	outsider := createTestUser(t, db, "Alan", "Turing", "alan")
	makeFriends(t, db, creator.ID, friend.ID)
	svc := newGroupService(db)

	created, err := svc.CreateGroup(context.Background(), "Trip", creator.ID, nil)
	require.NoError(t, err)

	// Non-member cannot invite, even a friend.
	makeFriends(t, db, outsider.ID, friend.ID)
	_, err = svc.InviteMember(context.Background(), created.GroupID, outsider.ID, friend.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Members can only invite friends.
	_, err = svc.InviteMember(context.Background(), created.GroupID, creator.ID, outsider.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Happy path.
	result, err := svc.InviteMember(context.Background(), created.GroupID, creator.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, InviteAdded, result)

	// Re-inviting a member is an idempotent success, not a duplicate row.
	result, err = svc.InviteMember(context.Background(), created.GroupID, creator.ID, friend.ID)
	require.NoError(t, err)
	assert.Equal(t, InviteAlreadyMember, result)

	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ? AND username = ?", created.GroupID, "grace").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLeaveGroup_WritesDepartureMessage(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	friend := createTestUser(t, db, "Grace", "Hopper", "grace")
	makeFriends(t, db, creator.ID, friend.ID)
	svc := newGroupService(db)

	created, err := svc.CreateGroup(context.Background(), "Trip", creator.ID, []uint{friend.ID})
	require.NoError(t, err)

	require.NoError(t, svc.LeaveGroup(context.Background(), created.GroupID, friend.ID))

	var memberCount int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ? AND username = ?", created.GroupID, "grace").
		Count(&memberCount).Error)
	assert.Zero(t, memberCount)

	var message models.Message
	require.NoError(t, db.Where("group_id = ?", created.GroupID).First(&message).Error)
	assert.Equal(t, "grace", message.Sender)
	assert.Equal(t, "Grace Hopper has left the group", message.Body)
}

func TestLeaveGroup_NonMemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	outsider := createTestUser(t, db, "Alan", "Turing", "alan")
	svc := newGroupService(db)

	created, err := svc.CreateGroup(context.Background(), "Trip", creator.ID, nil)
	require.NoError(t, err)

	err = svc.LeaveGroup(context.Background(), created.GroupID, outsider.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// The rolled-back transaction must not leave a departure message behind.
	var messageCount int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("group_id = ?", created.GroupID).Count(&messageCount).Error)
	assert.Zero(t, messageCount)
}

func TestDeleteGroup_Cascades(t *testing.T) {
	db := setupTestDB(t)
	creator := createTestUser(t, db, "Ada", "Lovelace", "ada")
	svc := newGroupService(db)

	created, err := svc.CreateGroup(context.Background(), "Trip", creator.ID, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Message{
			GroupID: created.GroupID,
			Sender:  "ada",
			Body:    fmt.Sprintf("message %d", i),
		}).Error)
	}

	require.NoError(t, svc.DeleteGroup(context.Background(), created.GroupID))

	for _, model := range []interface{}{&models.Message{}, &models.GroupMember{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("group_id = ?", created.GroupID).Count(&count).Error)
		assert.Zero(t, count)
	}
	var groupCount int64
	require.NoError(t, db.Model(&models.Group{}).Where("id = ?", created.GroupID).Count(&groupCount).Error)
	assert.Zero(t, groupCount)
}

func TestDeleteGroup_UnknownGroup(t *testing.T) {
	db := setupTestDB(t)
	svc := newGroupService(db)

	err := svc.DeleteGroup(context.Background(), 404)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
