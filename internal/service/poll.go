package service

import (
	"context"
	"fmt"

	"github.com/planit/api/internal/model"
)

// PollRepositoryInterface defines the interface for poll storage
type PollRepositoryInterface interface {
	// Create persists the poll and its options atomically.
	Create(ctx context.Context, poll *model.Poll, options []string) error
	Get(ctx context.Context, pollID string) (*model.Poll, error)
	GetByEvent(ctx context.Context, eventID string) ([]*model.Poll, error)
	// Delete cascades options and ballots before the poll row.
	Delete(ctx context.Context, pollID string) error

	GetOption(ctx context.Context, optionID string) (*model.PollOption, error)
	GetOptions(ctx context.Context, pollID string) ([]*model.PollOption, error)

	CreateBallot(ctx context.Context, ballot *model.Ballot) error
	HasVoted(ctx context.Context, pollID, userID string) (bool, error)
}

// PollEventRepository is the slice of the event repository the poll rules need
type PollEventRepository interface {
	Get(ctx context.Context, eventID string) (*model.Event, error)
	IsOrganizer(ctx context.Context, eventID, userID string) (bool, error)
}

// PollService handles poll business logic
type PollService struct {
	repo      PollRepositoryInterface
	eventRepo PollEventRepository
}

// PollServiceConfig holds configuration for the poll service
type PollServiceConfig struct {
	PollRepo  PollRepositoryInterface
	EventRepo PollEventRepository
}

// NewPollService creates a new poll service
func NewPollService(cfg PollServiceConfig) *PollService {
	return &PollService{
		repo:      cfg.PollRepo,
		eventRepo: cfg.EventRepo,
	}
}

// Create creates a poll on an event. Organizers only; option count is bound
// to [2,5] and duration must be a positive number of hours.
func (s *PollService) Create(ctx context.Context, eventID, userID string, req *model.CreatePollRequest) (*model.Poll, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	isOrganizer, err := s.eventRepo.IsOrganizer(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organizer: %w", err)
	}
	if !isOrganizer {
		return nil, ErrUserIsNotOrganizer
	}

	input, errs := req.Validate()
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	poll := &model.Poll{
		EventID:   eventID,
		Title:     input.Title,
		Duration:  input.Duration,
		CreatedBy: userID,
	}

	if err := s.repo.Create(ctx, poll, input.Options); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, nil
}

// Get retrieves a poll with its options and vote counts
func (s *PollService) Get(ctx context.Context, pollID string) (*model.PollWithOptions, error) {
	poll, err := s.repo.Get(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}

	optionPtrs, err := s.repo.GetOptions(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	options := make([]model.PollOption, len(optionPtrs))
	for i, opt := range optionPtrs {
		options[i] = *opt
	}

	return &model.PollWithOptions{Poll: *poll, Options: options}, nil
}

// GetByEvent lists an event's polls
func (s *PollService) GetByEvent(ctx context.Context, eventID string) ([]*model.Poll, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.repo.GetByEvent(ctx, eventID)
}

// Vote records exactly one ballot per (user, poll) pair. The repository's
// unique index on (poll, user) backs up this pre-check under concurrency.
func (s *PollService) Vote(ctx context.Context, pollID, optionID, userID string) error {
	poll, err := s.repo.Get(ctx, pollID)
	if err != nil {
		return fmt.Errorf("failed to get poll: %w", err)
	}
	if poll == nil {
		return ErrPollNotFound
	}

	option, err := s.repo.GetOption(ctx, optionID)
	if err != nil {
		return fmt.Errorf("failed to get option: %w", err)
	}
	if option == nil || option.PollID != poll.ID {
		return ErrOptionNotFound
	}

	hasVoted, err := s.repo.HasVoted(ctx, pollID, userID)
	if err != nil {
		return fmt.Errorf("failed to check ballot: %w", err)
	}
	if hasVoted {
		return ErrUserAlreadyVoted
	}

	ballot := &model.Ballot{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	}
	if err := s.repo.CreateBallot(ctx, ballot); err != nil {
		return fmt.Errorf("failed to record ballot: %w", err)
	}
	return nil
}

// Delete removes a poll and cascades its options and ballots. The requester
// must be an organizer of the poll's event.
func (s *PollService) Delete(ctx context.Context, pollID, userID string) error {
	poll, err := s.repo.Get(ctx, pollID)
	if err != nil {
		return fmt.Errorf("failed to get poll: %w", err)
	}
	if poll == nil {
		return ErrPollNotFound
	}

	isOrganizer, err := s.eventRepo.IsOrganizer(ctx, poll.EventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check organizer: %w", err)
	}
	if !isOrganizer {
		return ErrUserIsNotOrganizer
	}

	return s.repo.Delete(ctx, pollID)
}
