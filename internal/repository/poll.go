package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/planit/api/internal/database"
	"github.com/planit/api/internal/model"
)

// PollRepository handles poll, option, and ballot data access
type PollRepository struct {
	db database.Database
}

// NewPollRepository creates a new poll repository
func NewPollRepository(db database.Database) *PollRepository {
	return &PollRepository{db: db}
}

// Create persists the poll and its options in a single transaction.
func (r *PollRepository) Create(ctx context.Context, poll *model.Poll, options []string) error {
	tb := database.NewTxBuilder()

	pollQuery := `
		LET $created = (CREATE poll CONTENT {
			event: type::record($event_id),
			title: $title,
			duration: $duration,
			created_by: type::record($author),
			created_on: time::now()
		})`
	tb.Add(pollQuery, map[string]interface{}{
		"event_id": poll.EventID,
		"title":    poll.Title,
		"duration": poll.Duration,
		"author":   poll.CreatedBy,
	})

	for _, text := range options {
		optionQuery := `CREATE poll_option CONTENT { poll: $created[0].id, text: $text }`
		tb.Add(optionQuery, map[string]interface{}{"text": text})
	}

	tb.AddRaw(`SELECT * FROM $created`)

	result, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return errors.New("empty transaction result")
	}

	data, err := unwrapRecord(result[len(result)-1])
	if err != nil {
		return err
	}
	created, parseErr := parsePollRecord(data)
	if parseErr != nil {
		return parseErr
	}

	poll.ID = created.ID
	poll.CreatedOn = created.CreatedOn
	return nil
}

// Get retrieves a poll by ID, or (nil, nil) if missing
func (r *PollRepository) Get(ctx context.Context, pollID string) (*model.Poll, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": pollID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected poll format")
	}
	return parsePollRecord(data)
}

// GetByEvent lists an event's polls, newest first
func (r *PollRepository) GetByEvent(ctx context.Context, eventID string) ([]*model.Poll, error) {
	query := `SELECT * FROM poll WHERE event = type::record($event_id) ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event_id": eventID})
	if err != nil {
		return nil, err
	}

	polls := make([]*model.Poll, 0)
	for _, data := range unwrapRecords(result) {
		poll, err := parsePollRecord(data)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

// Delete removes a poll and cascades its options and ballots
func (r *PollRepository) Delete(ctx context.Context, pollID string) error {
	batch := database.NewAtomicBatch()
	vars := map[string]interface{}{"id": pollID}

	batch.Add(`DELETE ballot WHERE poll = type::record($id)`, vars)
	batch.Add(`DELETE poll_option WHERE poll = type::record($id)`, vars)
	batch.Add(`DELETE type::record($id)`, vars)

	return batch.Execute(ctx, r.db)
}

// GetOption retrieves a single option with its vote count, or
// (nil, nil) if missing
func (r *PollRepository) GetOption(ctx context.Context, optionID string) (*model.PollOption, error) {
	query := `SELECT *, count(SELECT id FROM ballot WHERE option = $parent.id) AS votes FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": optionID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected option format")
	}
	return parseOptionRecord(data), nil
}

// GetOptions lists a poll's options with vote counts
func (r *PollRepository) GetOptions(ctx context.Context, pollID string) ([]*model.PollOption, error) {
	query := `SELECT *, count(SELECT id FROM ballot WHERE option = $parent.id) AS votes FROM poll_option WHERE poll = type::record($poll_id)`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"poll_id": pollID})
	if err != nil {
		return nil, err
	}

	options := make([]*model.PollOption, 0)
	for _, data := range unwrapRecords(result) {
		options = append(options, parseOptionRecord(data))
	}
	return options, nil
}

// CreateBallot records a vote. The unique index on (poll, user) turns a
// concurrent double vote into ErrDuplicate.
func (r *PollRepository) CreateBallot(ctx context.Context, ballot *model.Ballot) error {
	query := `
		CREATE ballot CONTENT {
			poll: type::record($poll_id),
			option: type::record($option_id),
			user: type::record($user_id),
			cast_on: time::now()
		}`
	vars := map[string]interface{}{
		"poll_id":   ballot.PollID,
		"option_id": ballot.OptionID,
		"user_id":   ballot.UserID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: user already voted", database.ErrDuplicate)
		}
		return err
	}
	if len(result) > 0 {
		if data, uerr := unwrapRecord(result[0]); uerr == nil {
			ballot.ID = convertSurrealID(data["id"])
			ballot.CastOn = getTime(data, "cast_on")
		}
	}
	return nil
}

// HasVoted reports whether the user already holds a ballot on the poll
func (r *PollRepository) HasVoted(ctx context.Context, pollID, userID string) (bool, error) {
	query := `SELECT count() FROM ballot WHERE poll = type::record($poll_id) AND user = type::record($user_id) GROUP ALL`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"poll_id": pollID,
		"user_id": userID,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return extractCount(result) > 0, nil
}

func parsePollRecord(data map[string]interface{}) (*model.Poll, error) {
	normalizeLinks(data, "event", "created_by")
	poll := &model.Poll{
		ID:        convertSurrealID(data["id"]),
		EventID:   getString(data, "event"),
		Title:     getString(data, "title"),
		CreatedBy: getString(data, "created_by"),
		CreatedOn: getTime(data, "created_on"),
	}
	switch d := data["duration"].(type) {
	case float64:
		poll.Duration = int(d)
	case int:
		poll.Duration = d
	case int64:
		poll.Duration = int(d)
	case uint64:
		poll.Duration = int(d)
	}
	return poll, nil
}

func parseOptionRecord(data map[string]interface{}) *model.PollOption {
	normalizeLinks(data, "poll")
	opt := &model.PollOption{
		ID:     convertSurrealID(data["id"]),
		PollID: getString(data, "poll"),
		Text:   getString(data, "text"),
	}
	switch v := data["votes"].(type) {
	case float64:
		opt.Votes = int(v)
	case int:
		opt.Votes = v
	case int64:
		opt.Votes = int(v)
	case uint64:
		opt.Votes = int(v)
	}
	return opt
}
