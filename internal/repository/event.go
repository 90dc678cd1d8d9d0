package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/planit/api/internal/database"
	"github.com/planit/api/internal/model"
)

// EventRepository handles event and participant data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists the event together with the creator's membership in a
// single transaction. The creator's row carries the Organizer role, so a
// half-created event with no organizer can never be observed.
func (r *EventRepository) Create(ctx context.Context, event *model.Event, creatorID string) error {
	tb := database.NewTxBuilder()

	eventQuery := `
		LET $created = (CREATE event CONTENT {
			title: $title,
			description: $description,
			category: $category,
			subcategory: IF $subcategory IS NOT NULL THEN $subcategory ELSE NONE END,
			visibility: $visibility,
			date: IF $event_date IS NOT NULL THEN $event_date ELSE NONE END,
			end_date: IF $end_date IS NOT NULL THEN $end_date ELSE NONE END,
			price: { amount: $amount, currency: $currency },
			location_type: $loc_kind,
			location: IF $loc_name IS NOT NULL THEN $loc_name ELSE NONE END,
			coordinates: { lat: $lat, lng: $lng },
			code: $code,
			password: IF $join_password IS NOT NULL THEN $join_password ELSE NONE END,
			created_by: type::record($creator),
			created_on: time::now(),
			updated_on: time::now()
		})`
	tb.Add(eventQuery, map[string]interface{}{
		"title":         event.Title,
		"description":   event.Description,
		"category":      event.Category,
		"subcategory":   nilIfEmpty(event.Subcategory),
		"visibility":    string(event.Visibility),
		"event_date":    nilIfEmpty(string(event.Date)),
		"end_date":      nilIfEmpty(string(event.EndDate)),
		"amount":        event.Price.Amount,
		"currency":      event.Price.Currency,
		"loc_kind":      string(event.LocationType),
		"loc_name":      nilIfEmpty(event.Location),
		"lat":           event.Coordinates.Lat,
		"lng":           event.Coordinates.Lng,
		"code":          event.Code,
		"join_password": nilIfEmpty(event.Password),
		"creator":       creatorID,
	})

	memberQuery := `
		CREATE participant CONTENT {
			event: $created[0].id,
			user: type::record($member_id),
			role: $member_role,
			joined_on: time::now()
		}`
	tb.Add(memberQuery, map[string]interface{}{
		"member_id":   creatorID,
		"member_role": string(model.RoleOrganizer),
	})

	tb.AddRaw(`SELECT * FROM $created`)

	result, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: join code collision", database.ErrDuplicate)
		}
		return err
	}
	if len(result) == 0 {
		return errors.New("empty transaction result")
	}

	data, err := unwrapRecord(result[len(result)-1])
	if err != nil {
		return err
	}
	created, parseErr := parseEventRecord(data)
	if parseErr != nil {
		return parseErr
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// Get retrieves an event by ID. Returns (nil, nil) when the event does
// not exist.
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": eventID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventResult(result)
}

// GetByCode retrieves an event by its join code
func (r *EventRepository) GetByCode(ctx context.Context, code string) (*model.Event, error) {
	query := `SELECT * FROM event WHERE code = $code LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"code": code})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseEventResult(result)
}

// Update overwrites the event's editable fields
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			category = $category,
			subcategory = IF $subcategory IS NOT NULL THEN $subcategory ELSE NONE END,
			visibility = $visibility,
			date = IF $event_date IS NOT NULL THEN $event_date ELSE NONE END,
			end_date = IF $end_date IS NOT NULL THEN $end_date ELSE NONE END,
			price = { amount: $amount, currency: $currency },
			location_type = $location_type,
			location = IF $location IS NOT NULL THEN $location ELSE NONE END,
			coordinates = { lat: $lat, lng: $lng },
			password = IF $join_password IS NOT NULL THEN $join_password ELSE NONE END,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":            event.ID,
		"title":         event.Title,
		"description":   event.Description,
		"category":      event.Category,
		"subcategory":   nilIfEmpty(event.Subcategory),
		"visibility":    string(event.Visibility),
		"event_date":    nilIfEmpty(string(event.Date)),
		"end_date":      nilIfEmpty(string(event.EndDate)),
		"amount":        event.Price.Amount,
		"currency":      event.Price.Currency,
		"location_type": string(event.LocationType),
		"location":      nilIfEmpty(event.Location),
		"lat":           event.Coordinates.Lat,
		"lng":           event.Coordinates.Lng,
		"join_password": nilIfEmpty(event.Password),
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete removes the event and cascades memberships, polls, poll
// options, ballots, and chat messages in one transaction.
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	batch := database.NewAtomicBatch()
	vars := map[string]interface{}{"id": eventID}

	batch.Add(`DELETE ballot WHERE poll IN (SELECT VALUE id FROM poll WHERE event = type::record($id))`, vars)
	batch.Add(`DELETE poll_option WHERE poll IN (SELECT VALUE id FROM poll WHERE event = type::record($id))`, vars)
	batch.Add(`DELETE poll WHERE event = type::record($id)`, vars)
	batch.Add(`DELETE chat_message WHERE event = type::record($id)`, vars)
	batch.Add(`DELETE participant WHERE event = type::record($id)`, vars)
	batch.Add(`DELETE type::record($id)`, vars)

	return batch.Execute(ctx, r.db)
}

// Search retrieves public events matching the optional filters, newest
// first. Title matching is a case-insensitive substring match.
func (r *EventRepository) Search(ctx context.Context, filters *model.EventSearchFilters, limit, offset int) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE visibility = $visibility`
	vars := map[string]interface{}{
		"visibility": string(model.VisibilityPublic),
		"limit":      limit,
		"offset":     offset,
	}

	if filters != nil {
		if filters.Title != "" {
			query += ` AND string::lowercase(title) CONTAINS string::lowercase($title)`
			vars["title"] = filters.Title
		}
		if filters.Category != "" {
			query += ` AND category = $category`
			vars["category"] = filters.Category
		}
		if filters.Subcategory != "" {
			query += ` AND subcategory = $subcategory`
			vars["subcategory"] = filters.Subcategory
		}
	}
	query += ` ORDER BY created_on DESC LIMIT $limit START $offset`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	events := make([]*model.Event, 0)
	for _, data := range unwrapRecords(result) {
		event, err := parseEventRecord(data)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// AddParticipant records a membership row for the user
func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string, role model.EventRole) error {
	query := `
		CREATE participant CONTENT {
			event: type::record($event_id),
			user: type::record($user_id),
			role: $role,
			joined_on: time::now()
		}`
	vars := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
		"role":     string(role),
	}
	if err := r.db.Execute(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: user already in event", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// RemoveParticipant deletes the user's membership row
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	query := `DELETE participant WHERE event = type::record($event_id) AND user = type::record($user_id)`
	return r.db.Execute(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	})
}

// GetParticipant retrieves the user's membership row, or (nil, nil) if
// the user is not in the event.
func (r *EventRepository) GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error) {
	query := `SELECT * FROM participant WHERE event = type::record($event_id) AND user = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected participant format")
	}
	return parseParticipantRecord(data)
}

// GetParticipants lists an event's members ordered by join time
func (r *EventRepository) GetParticipants(ctx context.Context, eventID string) ([]*model.Participant, error) {
	query := `SELECT * FROM participant WHERE event = type::record($event_id) ORDER BY joined_on ASC`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event_id": eventID})
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0)
	for _, data := range unwrapRecords(result) {
		p, err := parseParticipantRecord(data)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

// UpdateParticipantRole changes the role on an existing membership row
func (r *EventRepository) UpdateParticipantRole(ctx context.Context, eventID, userID string, role model.EventRole) error {
	query := `UPDATE participant SET role = $role WHERE event = type::record($event_id) AND user = type::record($user_id)`
	return r.db.Execute(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
		"role":     string(role),
	})
}

// IsOrganizer reports whether the user holds the Organizer role
func (r *EventRepository) IsOrganizer(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT count() FROM participant WHERE event = type::record($event_id) AND user = type::record($user_id) AND role = $role GROUP ALL`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
		"role":     string(model.RoleOrganizer),
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return extractCount(result) > 0, nil
}

// CountOrganizers counts the event's organizers
func (r *EventRepository) CountOrganizers(ctx context.Context, eventID string) (int, error) {
	query := `SELECT count() FROM participant WHERE event = type::record($event_id) AND role = $role GROUP ALL`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"event_id": eventID,
		"role":     string(model.RoleOrganizer),
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return extractCount(result), nil
}

func parseEventResult(result interface{}) (*model.Event, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected event format")
	}
	return parseEventRecord(data)
}

// parseEventRecord decodes an event record. The join password carries a
// json:"-" tag on the model, so it is extracted before the round-trip.
func parseEventRecord(data map[string]interface{}) (*model.Event, error) {
	normalizeLinks(data, "created_by")
	password := getString(data, "password")

	var event model.Event
	if err := decodeRecord(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}
	event.Password = password
	return &event, nil
}

// parseParticipantRecord decodes a membership row. The event and user
// links come back as record IDs and map onto the model's string fields.
func parseParticipantRecord(data map[string]interface{}) (*model.Participant, error) {
	normalizeLinks(data, "event", "user")
	p := &model.Participant{
		ID:       convertSurrealID(data["id"]),
		EventID:  getString(data, "event"),
		UserID:   getString(data, "user"),
		Role:     model.EventRole(getString(data, "role")),
		JoinedOn: getTime(data, "joined_on"),
	}
	return p, nil
}
