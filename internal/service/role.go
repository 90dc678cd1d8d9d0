package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planit/api/internal/model"
)

// RoleEventRepository is the slice of the event repository the role rules need
type RoleEventRepository interface {
	Get(ctx context.Context, eventID string) (*model.Event, error)
	GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error)
	UpdateParticipantRole(ctx context.Context, eventID, userID string, role model.EventRole) error
	IsOrganizer(ctx context.Context, eventID, userID string) (bool, error)
	CountOrganizers(ctx context.Context, eventID string) (int, error)
}

// RoleService handles event role assignment rules
type RoleService struct {
	repo RoleEventRepository
	now  func() time.Time
}

// NewRoleService creates a new role service
func NewRoleService(repo RoleEventRepository) *RoleService {
	return &RoleService{repo: repo, now: time.Now}
}

// AssignRole grants a role to a current participant. The requester must be
// an organizer and the event must not have ended.
func (s *RoleService) AssignRole(ctx context.Context, eventID, requesterID, targetID string, role model.EventRole) error {
	if role != model.RoleOrganizer && role != model.RoleParticipant {
		return ErrInvalidRole
	}

	event, _, err := s.checkPreconditions(ctx, eventID, requesterID, targetID)
	if err != nil {
		return err
	}

	if event.HasEnded(s.now()) {
		return ErrEventHasEnded
	}

	return s.repo.UpdateParticipantRole(ctx, eventID, targetID, role)
}

// RemoveRole demotes a participant back to the plain Participant role.
// Removing the last remaining organizer is forbidden, as is "removing" a
// role from someone who is already a plain participant.
func (s *RoleService) RemoveRole(ctx context.Context, eventID, requesterID, targetID string) error {
	event, target, err := s.checkPreconditions(ctx, eventID, requesterID, targetID)
	if err != nil {
		return err
	}

	if event.HasEnded(s.now()) {
		return ErrEventHasEnded
	}

	if target.Role == model.RoleParticipant {
		return ErrAlreadyParticipant
	}

	if target.Role == model.RoleOrganizer {
		count, err := s.repo.CountOrganizers(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to count organizers: %w", err)
		}
		if count <= 1 {
			return ErrOnlyOrganizer
		}
	}

	return s.repo.UpdateParticipantRole(ctx, eventID, targetID, model.RoleParticipant)
}

func (s *RoleService) checkPreconditions(ctx context.Context, eventID, requesterID, targetID string) (*model.Event, *model.Participant, error) {
	event, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, nil, ErrEventNotFound
	}

	isOrganizer, err := s.repo.IsOrganizer(ctx, eventID, requesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check organizer: %w", err)
	}
	if !isOrganizer {
		return nil, nil, ErrUserIsNotOrganizer
	}

	target, err := s.repo.GetParticipant(ctx, eventID, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get participant: %w", err)
	}
	if target == nil {
		return nil, nil, ErrUserNotInEvent
	}

	return event, target, nil
}
