package database

import (
	"context"
	"database/sql"
	"fmt"

	"opti_campaign/internal/common/security"
)

// SeedAdminUser inserts a login user if the username is not already taken.
// No user-creation endpoint is exposed, so this is how the first account
// gets provisioned.
func SeedAdminUser(ctx context.Context, db *sql.DB, username, password string) error {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, hashed_password) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		username, hashed,
	)
	if err != nil {
		return fmt.Errorf("failed to seed user %q: %w", username, err)
	}
	return nil
}
