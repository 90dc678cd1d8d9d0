package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/planit/api/internal/database"
	"github.com/planit/api/internal/model"
)

// UserRepository handles user and feedback data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. The unique indexes on email and username
// reject races the service-level pre-checks miss.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			name: $name,
			hash: $hash,
			interests: [],
			created_on: time::now(),
			updated_on: time::now()
		}`
	vars := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"name":     user.Name,
		"hash":     user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already taken", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID, or (nil, nil) if missing
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// GetByEmail retrieves a user by email, or (nil, nil) if missing
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"email": email})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// GetByUsername retrieves a user by username, or (nil, nil) if missing
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"username": username})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// UpdateInterests replaces the user's interest list
func (r *UserRepository) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	query := `UPDATE type::record($id) SET interests = $interests, updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{
		"id":        userID,
		"interests": interests,
	})
}

// CreateFeedback stores a feedback entry
func (r *UserRepository) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	query := `
		CREATE feedback CONTENT {
			user: type::record($user_id),
			text: $text,
			created_on: time::now()
		}`
	vars := map[string]interface{}{
		"user_id": feedback.UserID,
		"text":    feedback.Text,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	feedback.ID = created.ID
	feedback.CreatedOn = created.CreatedOn
	return nil
}

// parseUserResult decodes a user record. The bcrypt hash carries a
// json:"-" tag on the model, so it is extracted before the round-trip.
func parseUserResult(result interface{}) (*model.User, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected user format")
	}

	hash := getString(data, "hash")

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	user.Hash = hash
	return &user, nil
}
