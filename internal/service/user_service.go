package service

import (
	"context"

	"tripsync/internal/models"
	"tripsync/internal/repository"
)

// UserService provides registration, login and user search.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the required registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// Register creates a new account. Username and email must be unique.
// Passwords are stored as provided; hashing is an external concern layered on
// before production use.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Username == "" ||
		input.Email == "" || input.Password == "" {
		return nil, models.NewValidationError("Missing required fields")
	}

	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, models.NewValidationError("Email already registered")
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the account.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Missing credentials")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if user.Password != password {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// SearchUsers returns users other than currentUserID. With a search term the
// rows carry the friendship status relative to the searcher.
func (s *UserService) SearchUsers(ctx context.Context, search string, currentUserID uint) ([]models.UserSearchResult, error) {
	if search != "" {
		return s.userRepo.SearchWithFriendshipStatus(ctx, search, currentUserID)
	}
	return s.userRepo.List(ctx, currentUserID)
}
