package service

import (
	"context"

	"tripsync/internal/models"
	"tripsync/internal/repository"

	"gorm.io/gorm"
)

// GroupService provides group and membership business logic. It holds the
// gorm handle directly because group workflows (create with creator, leave
// with announcement, cascade delete) are multi-statement transactions.
type GroupService struct {
	db        *gorm.DB
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(db *gorm.DB, groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		db:        db,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroupResult reports the group id and which of the requested members
// were actually added.
type CreateGroupResult struct {
	GroupID      uint   `json:"group_id"`
	MembersAdded []uint `json:"members_added"`
}

// CreateGroup creates the group and adds the creator's username as its first
// member, bypassing the friendship check. Requested members are added only
// when an accepted friendship with the creator exists; unknown ids and
// non-friends are skipped rather than failing the whole creation. All inserts
// commit atomically with the group row.
func (s *GroupService) CreateGroup(ctx context.Context, name string, createdBy uint, memberIDs []uint) (*CreateGroupResult, error) {
	creator, err := s.userRepo.GetByID(ctx, createdBy)
	if err != nil {
		return nil, err
	}

	result := &CreateGroupResult{MembersAdded: []uint{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groups := repository.NewGroupRepository(tx)
		friends := repository.NewFriendRepository(tx)
		users := repository.NewUserRepository(tx)

		group := &models.Group{Name: name, CreatedBy: createdBy}
		if err := groups.Create(ctx, group); err != nil {
			return err
		}
		result.GroupID = group.ID

		if err := groups.AddMember(ctx, group.ID, creator.Username); err != nil {
			return err
		}

		for _, memberID := range memberIDs {
			member, err := users.GetByID(ctx, memberID)
			if err != nil {
				if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
					continue
				}
				return err
			}

			isFriend, err := friends.AreFriends(ctx, createdBy, memberID)
			if err != nil {
				return err
			}
			if !isFriend {
				continue
			}

			if err := groups.AddMember(ctx, group.ID, member.Username); err != nil {
				return err
			}
			result.MembersAdded = append(result.MembersAdded, memberID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InviteResult distinguishes a fresh membership from an idempotent repeat.
type InviteResult string

const (
	// InviteAdded means a membership row was inserted.
	InviteAdded InviteResult = "Friend added to group successfully"
	// InviteAlreadyMember means the invitee already held a membership row.
	InviteAlreadyMember InviteResult = "User is already a member of this group"
)

// InviteMember adds the invitee's username to the group. The inviter must
// currently be a member, and the pair must be friends; both predicates are
// re-evaluated here rather than trusted from any earlier call. Inviting an
// existing member succeeds without inserting a duplicate row.
func (s *GroupService) InviteMember(ctx context.Context, groupID, inviterID, inviteeID uint) (InviteResult, error) {
	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return "", err
	}
	invitee, err := s.userRepo.GetByID(ctx, inviteeID)
	if err != nil {
		return "", err
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return "", err
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, inviter.Username)
	if err != nil {
		return "", err
	}
	if !isMember {
		return "", models.NewForbiddenError("You must be a member of the group to invite others")
	}

	friends := repository.NewFriendRepository(s.db)
	isFriend, err := friends.AreFriends(ctx, inviterID, inviteeID)
	if err != nil {
		return "", err
	}
	if !isFriend {
		return "", models.NewForbiddenError("You can only invite your friends to a group")
	}

	alreadyMember, err := s.groupRepo.IsMember(ctx, groupID, invitee.Username)
	if err != nil {
		return "", err
	}
	if alreadyMember {
		return InviteAlreadyMember, nil
	}

	if err := s.groupRepo.AddMember(ctx, groupID, invitee.Username); err != nil {
		return "", err
	}
	return InviteAdded, nil
}

// LeaveGroup removes the user's membership row and appends the departure
// announcement to the group's log. Both writes commit atomically; a group
// never shows a departure message without the membership actually gone,
// nor the reverse.
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groups := repository.NewGroupRepository(tx)
		messages := repository.NewMessageRepository(tx)

		isMember, err := groups.IsMember(ctx, groupID, user.Username)
		if err != nil {
			return err
		}
		if !isMember {
			return models.NewForbiddenError("User is not a member of this group")
		}

		if _, err := groups.RemoveMember(ctx, groupID, user.Username); err != nil {
			return err
		}

		announcement := &models.Message{
			GroupID: groupID,
			Sender:  user.Username,
			Body:    user.FullName() + " has left the group",
		}
		return messages.Create(ctx, announcement)
	})
}

// DeleteGroup removes the group's messages, memberships and the group row in
// one transaction. Either the group is fully gone or untouched.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groups := repository.NewGroupRepository(tx)
		messages := repository.NewMessageRepository(tx)

		if err := messages.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		if err := groups.RemoveAllMembers(ctx, groupID); err != nil {
			return err
		}
		return groups.Delete(ctx, groupID)
	})
}

// GroupsForUser returns the groups where the user's username holds a
// membership row.
func (s *GroupService) GroupsForUser(ctx context.Context, userID uint) ([]models.Group, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.groupRepo.ListGroupsForUsername(ctx, user.Username)
}

// CalendarGroupsForUser is the name-ordered variant used by the calendar
// group picker.
func (s *GroupService) CalendarGroupsForUser(ctx context.Context, userID uint) ([]models.Group, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.groupRepo.ListGroupsForUsernameByName(ctx, user.Username)
}

// Members returns the group's member identities, ordered by first then last name.
func (s *GroupService) Members(ctx context.Context, groupID uint) ([]models.User, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID)
}

// GroupInfo returns the group row.
func (s *GroupService) GroupInfo(ctx context.Context, groupID uint) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID)
}
