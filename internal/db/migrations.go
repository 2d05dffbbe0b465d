package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS local_storage (
		origin     TEXT     NOT NULL,
		key        TEXT     NOT NULL,
		value      TEXT     NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (origin, key)
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
