// Package service implements the business rules for the social graph,
// group membership, messaging and calendar components.
package service

import (
	"context"

	"tripsync/internal/models"
	"tripsync/internal/repository"
)

// FriendRequestResult describes what SendOrAcceptRequest did with the edge.
type FriendRequestResult string

const (
	// FriendRequestSent means a new pending edge was inserted.
	FriendRequestSent FriendRequestResult = "Friend request sent successfully"
	// FriendRequestAccepted means the reciprocal request accepted a pending edge.
	FriendRequestAccepted FriendRequestResult = "Friend request accepted"
	// FriendRequestAlreadySent means the same requester already has a pending edge.
	FriendRequestAlreadySent FriendRequestResult = "Friend request already sent"
	// FriendRequestAlreadyFriends means the pair already holds an accepted edge.
	FriendRequestAlreadyFriends FriendRequestResult = "Already friends"
)

// Created reports whether the result inserted a new edge (201 vs 200).
func (r FriendRequestResult) Created() bool {
	return r == FriendRequestSent
}

// FriendService provides friendship ledger business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendOrAcceptRequest resolves a friend request against the single edge that
// may exist for the pair, in either orientation:
//
//   - no edge: insert a pending edge oriented requester -> addressee
//   - accepted edge: no-op
//   - pending edge from the same requester: no-op (duplicate request)
//   - pending edge from the other party: transition to accepted
//
// The last case is the mutual-consent path: only the party who did NOT
// originate the pending edge can trigger acceptance by re-requesting.
func (s *FriendService) SendOrAcceptRequest(ctx context.Context, userID, friendID uint) (FriendRequestResult, error) {
	if userID == friendID {
		return "", models.NewValidationError("Cannot send friend request to yourself")
	}

	existing, err := s.friendRepo.GetBetweenUsers(ctx, userID, friendID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return FriendRequestAlreadyFriends, nil
		case models.FriendshipStatusPending:
			if existing.RequesterID == userID {
				return FriendRequestAlreadySent, nil
			}
			if _, err := s.friendRepo.AcceptByID(ctx, existing.ID); err != nil {
				return "", err
			}
			return FriendRequestAccepted, nil
		default:
			return "", models.NewValidationError("Unknown friendship status")
		}
	}

	friendship := &models.Friendship{
		RequesterID: userID,
		AddresseeID: friendID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return "", err
	}
	return FriendRequestSent, nil
}

// AcceptRequest sets the edge to accepted, whatever its current status.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID uint) error {
	rows, err := s.friendRepo.AcceptByID(ctx, requestID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("Friend request", requestID)
	}
	return nil
}

// RejectRequest deletes the edge while it is still pending. An edge that has
// already been accepted cannot be rejected.
func (s *FriendService) RejectRequest(ctx context.Context, requestID uint) error {
	rows, err := s.friendRepo.DeletePendingByID(ctx, requestID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("Friend request", requestID)
	}
	return nil
}

// IncomingRequests returns pending requests addressed to the user, joined
// with each requester's identity.
func (s *FriendService) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequestView, error) {
	friendships, err := s.friendRepo.GetIncomingPending(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.FriendRequestView, 0, len(friendships))
	for _, f := range friendships {
		views = append(views, models.FriendRequestView{
			ID:        f.ID,
			UserID:    f.RequesterID,
			Status:    f.Status,
			FirstName: f.Requester.FirstName,
			LastName:  f.Requester.LastName,
			Username:  f.Requester.Username,
		})
	}
	return views, nil
}

// Friends returns the list of friends for the user.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// AreFriends reports whether an accepted edge exists for the pair, in either
// orientation; the check is symmetric by construction.
func (s *FriendService) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userID1, userID2)
}
