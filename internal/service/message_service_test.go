package service

import (
	"context"
	"errors"
	"testing"

	"tripsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn           func(context.Context, *models.Group) error
	getByIDFn          func(context.Context, uint) (*models.Group, error)
	deleteFn           func(context.Context, uint) error
	addMemberFn        func(context.Context, uint, string) error
	removeMemberFn     func(context.Context, uint, string) (int64, error)
	removeAllMembersFn func(context.Context, uint) error
	isMemberFn         func(context.Context, uint, string) (bool, error)
	listMembersFn      func(context.Context, uint) ([]models.User, error)
	listGroupsFn       func(context.Context, string) ([]models.Group, error)
	listGroupsByNameFn func(context.Context, string) ([]models.Group, error)
}

func (s *groupRepoStub) Create(ctx context.Context, g *models.Group) error {
	return s.createFn(ctx, g)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) Delete(ctx context.Context, groupID uint) error {
	return s.deleteFn(ctx, groupID)
}
func (s *groupRepoStub) AddMember(ctx context.Context, groupID uint, username string) error {
	return s.addMemberFn(ctx, groupID, username)
}
func (s *groupRepoStub) RemoveMember(ctx context.Context, groupID uint, username string) (int64, error) {
	return s.removeMemberFn(ctx, groupID, username)
}
func (s *groupRepoStub) RemoveAllMembers(ctx context.Context, groupID uint) error {
	return s.removeAllMembersFn(ctx, groupID)
}
func (s *groupRepoStub) IsMember(ctx context.Context, groupID uint, username string) (bool, error) {
	return s.isMemberFn(ctx, groupID, username)
}
func (s *groupRepoStub) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	return s.listMembersFn(ctx, groupID)
}
func (s *groupRepoStub) ListGroupsForUsername(ctx context.Context, username string) ([]models.Group, error) {
	return s.listGroupsFn(ctx, username)
}
func (s *groupRepoStub) ListGroupsForUsernameByName(ctx context.Context, username string) ([]models.Group, error) {
	return s.listGroupsByNameFn(ctx, username)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:           func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		addMemberFn:        func(_ context.Context, _ uint, _ string) error { return nil },
		removeMemberFn:     func(_ context.Context, _ uint, _ string) (int64, error) { return 1, nil },
		removeAllMembersFn: func(_ context.Context, _ uint) error { return nil },
		isMemberFn:         func(_ context.Context, _ uint, _ string) (bool, error) { return true, nil },
		listMembersFn:      func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		listGroupsFn:       func(_ context.Context, _ string) ([]models.Group, error) { return nil, nil },
		listGroupsByNameFn: func(_ context.Context, _ string) ([]models.Group, error) { return nil, nil },
	}
}

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn        func(context.Context, *models.Message) error
	listByGroupFn   func(context.Context, uint) ([]models.Message, error)
	deleteByGroupFn func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.Message) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) ListByGroup(ctx context.Context, groupID uint) ([]models.Message, error) {
	return s.listByGroupFn(ctx, groupID)
}
func (s *messageRepoStub) DeleteByGroup(ctx context.Context, groupID uint) error {
	return s.deleteByGroupFn(ctx, groupID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:        func(_ context.Context, _ *models.Message) error { return nil },
		listByGroupFn:   func(_ context.Context, _ uint) ([]models.Message, error) { return nil, nil },
		deleteByGroupFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestPostMessage_MemberCanPost(t *testing.T) {
	messages := noopMessageRepo()
	var stored *models.Message
	messages.createFn = func(_ context.Context, m *models.Message) error {
		stored = m
		return nil
	}
	svc := NewMessageService(messages, noopGroupRepo(), noopUserRepo())

	err := svc.PostMessage(context.Background(), 1, "ada", "hello")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint(1), stored.GroupID)
	assert.Equal(t, "ada", stored.Sender)
	assert.Equal(t, "hello", stored.Body)
}

func TestPostMessage_NonMemberForbidden(t *testing.T) {
	groups := noopGroupRepo()
	groups.isMemberFn = func(_ context.Context, _ uint, _ string) (bool, error) { return false, nil }
	messages := noopMessageRepo()
	messages.createFn = func(_ context.Context, _ *models.Message) error {
		t.Fatal("message must not be stored for a non-member")
		return nil
	}
	svc := NewMessageService(messages, groups, noopUserRepo())

	err := svc.PostMessage(context.Background(), 1, "stranger", "hello")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestFetchMessages_MembershipCheckedByUsername(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "ada"}, nil
	}
	groups := noopGroupRepo()
	var checkedUsername string
	groups.isMemberFn = func(_ context.Context, _ uint, username string) (bool, error) {
		checkedUsername = username
		return true, nil
	}
	svc := NewMessageService(noopMessageRepo(), groups, users)

	_, err := svc.FetchMessages(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "ada", checkedUsername)
}

func TestFetchMessages_NonMemberForbidden(t *testing.T) {
	groups := noopGroupRepo()
	groups.isMemberFn = func(_ context.Context, _ uint, _ string) (bool, error) { return false, nil }
	svc := NewMessageService(noopMessageRepo(), groups, noopUserRepo())

	_, err := svc.FetchMessages(context.Background(), 1, 7)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}
