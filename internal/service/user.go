package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/planit/api/internal/model"
)

// UserService handles profile-adjacent operations: interests and feedback
type UserService struct {
	repo UserRepositoryInterface
}

// NewUserService creates a new user service
func NewUserService(repo UserRepositoryInterface) *UserService {
	return &UserService{repo: repo}
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetInterests replaces the user's interest list. Duplicate entries
// (case-insensitive) are rejected.
func (s *UserService) SetInterests(ctx context.Context, userID string, interests []string) error {
	seen := make(map[string]struct{}, len(interests))
	for _, interest := range interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" {
			return ErrDuplicateInterests
		}
		if _, dup := seen[key]; dup {
			return ErrDuplicateInterests
		}
		seen[key] = struct{}{}
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.repo.UpdateInterests(ctx, userID, interests)
}

// SubmitFeedback stores a free-text note. Blank feedback is rejected.
func (s *UserService) SubmitFeedback(ctx context.Context, userID, text string) (*model.Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankFeedback
	}

	feedback := &model.Feedback{UserID: userID, Text: text}
	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}
	return feedback, nil
}
