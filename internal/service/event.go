package service

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/planit/api/internal/model"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// EventRepositoryInterface defines the repository interface
type EventRepositoryInterface interface {
	// Create persists the event, the creator's membership, and the
	// creator's organizer role atomically.
	Create(ctx context.Context, event *model.Event, creatorID string) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	GetByCode(ctx context.Context, code string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	// Delete cascades memberships, polls, chat messages, then the event row.
	Delete(ctx context.Context, eventID string) error
	Search(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error)

	AddParticipant(ctx context.Context, eventID, userID string, role model.EventRole) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error)
	GetParticipants(ctx context.Context, eventID string) ([]*model.Participant, error)
	UpdateParticipantRole(ctx context.Context, eventID, userID string, role model.EventRole) error
	IsOrganizer(ctx context.Context, eventID, userID string) (bool, error)
	CountOrganizers(ctx context.Context, eventID string) (int, error)
}

// EventService handles event lifecycle business logic
type EventService struct {
	repo    EventRepositoryInterface
	catalog *model.CategoryCatalog
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo EventRepositoryInterface
	Catalog   *model.CategoryCatalog
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		repo:    cfg.EventRepo,
		catalog: cfg.Catalog,
	}
}

// Create validates the full field set and creates the event. The requester
// becomes the organizer and the event receives a generated join code. The
// event row, membership, and organizer role are written atomically.
func (s *EventService) Create(ctx context.Context, userID string, req *model.CreateEventRequest) (*model.Event, error) {
	input, errs := req.Validate(s.catalog)
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	if input.Visibility == model.VisibilityPrivate && input.Password == "" {
		return nil, ErrFailedToCreateEvent
	}

	code, err := generateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	event := &model.Event{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		Visibility:   input.Visibility,
		Date:         input.Date,
		EndDate:      input.EndDate,
		Price:        input.Price,
		LocationType: input.LocationType,
		Location:     input.Location,
		Coordinates:  input.Coordinates,
		Code:         code,
		Password:     input.Password,
		CreatedBy:    userID,
	}

	if err := s.repo.Create(ctx, event, userID); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Search retrieves events matching the optional filters
func (s *EventService) Search(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(ctx, filters, limit, offset)
}

// Join adds the requester as a participant. Private events require the
// matching password.
func (s *EventService) Join(ctx context.Context, eventID, userID, password string) error {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	if event.Visibility == model.VisibilityPrivate && event.Password != password {
		return ErrIncorrectPassword
	}

	existing, err := s.repo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return ErrUserAlreadyInEvent
	}

	return s.repo.AddParticipant(ctx, eventID, userID, model.RoleParticipant)
}

// JoinByCode resolves a 6-character join code and joins that event. Codes
// bypass the password gate: knowing the code is the invitation.
func (s *EventService) JoinByCode(ctx context.Context, code, userID string) (*model.Event, error) {
	canonical, fe := model.ValidateCode(code)
	if fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}

	event, err := s.repo.GetByCode(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to get event by code: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	existing, err := s.repo.GetParticipant(ctx, event.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyInEvent
	}

	if err := s.repo.AddParticipant(ctx, event.ID, userID, model.RoleParticipant); err != nil {
		return nil, err
	}
	return event, nil
}

// Leave removes the requester's membership. Leaving as the sole organizer
// is not blocked here; only RemoveRole guards the last organizer.
func (s *EventService) Leave(ctx context.Context, eventID, userID string) error {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	participant, err := s.repo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if participant == nil {
		return ErrUserNotInEvent
	}

	return s.repo.RemoveParticipant(ctx, eventID, userID)
}

// Delete removes the event and everything attached to it. Organizers only.
func (s *EventService) Delete(ctx context.Context, eventID, userID string) error {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	isOrganizer, err := s.repo.IsOrganizer(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check organizer: %w", err)
	}
	if !isOrganizer {
		return ErrUserIsNotOrganizer
	}

	return s.repo.Delete(ctx, eventID)
}

// Edit re-validates the complete field set and overwrites the event.
// Organizers only.
func (s *EventService) Edit(ctx context.Context, eventID, userID string, req *model.CreateEventRequest) (*model.Event, error) {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	isOrganizer, err := s.repo.IsOrganizer(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organizer: %w", err)
	}
	if !isOrganizer {
		return nil, ErrUserIsNotOrganizer
	}

	input, errs := req.Validate(s.catalog)
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if input.Visibility == model.VisibilityPrivate && input.Password == "" {
		return nil, ErrFailedToCreateEvent
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Category = input.Category
	event.Subcategory = input.Subcategory
	event.Visibility = input.Visibility
	event.Date = input.Date
	event.EndDate = input.EndDate
	event.Price = input.Price
	event.LocationType = input.LocationType
	event.Location = input.Location
	event.Coordinates = input.Coordinates
	event.Password = input.Password

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// GetParticipants lists an event's members
func (s *EventService) GetParticipants(ctx context.Context, eventID string) ([]*model.Participant, error) {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.repo.GetParticipants(ctx, eventID)
}

// generateJoinCode produces a random 6-character alphanumeric code.
func generateJoinCode() (string, error) {
	buf := make([]byte, model.CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
