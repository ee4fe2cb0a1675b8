package service

import (
	"context"

	"tripsync/internal/models"
	"tripsync/internal/repository"
)

// MessageService provides the membership-gated message log.
type MessageService struct {
	messageRepo repository.MessageRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

// PostMessage appends a message to the group's log. The sender must hold a
// membership row at the time of the post; the check runs in the same
// operation as the insert, never from a cached earlier answer.
func (s *MessageService) PostMessage(ctx context.Context, groupID uint, sender, body string) error {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, sender)
	if err != nil {
		return err
	}
	if !isMember {
		return models.NewForbiddenError("You are not a member of this group")
	}

	message := &models.Message{
		GroupID: groupID,
		Sender:  sender,
		Body:    body,
	}
	return s.messageRepo.Create(ctx, message)
}

// FetchMessages returns the group's full log, oldest first, for a requester
// who is currently a member.
func (s *MessageService) FetchMessages(ctx context.Context, groupID, requestingUserID uint) ([]models.Message, error) {
	user, err := s.userRepo.GetByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, user.Username)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.NewForbiddenError("User is not a member of this group")
	}

	return s.messageRepo.ListByGroup(ctx, groupID)
}
