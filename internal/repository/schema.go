package repository

import (
	"context"
	"fmt"

	"github.com/planit/api/internal/database"
)

// schemaStatements declares the indexes the repositories depend on.
// The unique indexes are the authoritative guard against duplicate
// emails, usernames, join codes, memberships, and ballots; the service
// layer pre-checks exist only to produce friendlier errors.
var schemaStatements = []string{
	`DEFINE INDEX IF NOT EXISTS user_email_idx ON TABLE user COLUMNS email UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS user_username_idx ON TABLE user COLUMNS username UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS event_code_idx ON TABLE event COLUMNS code UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS participant_member_idx ON TABLE participant COLUMNS event, user UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS ballot_voter_idx ON TABLE ballot COLUMNS poll, user UNIQUE`,
}

// ApplySchema creates the indexes if they do not exist. Called once at
// startup, after the connection is established.
func ApplySchema(ctx context.Context, db database.Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", stmt, err)
		}
	}
	return nil
}
