package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data. It creates
// the default category if none exists, matching the default taxonomy
// items have when a payload carries no usable category references.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
	`, "Uncategorized", "uncategorized")
	if err != nil {
		return fmt.Errorf("seed insert default category: %w", err)
	}

	slog.Info("database seeded with default category", "name", "Uncategorized")
	return nil
}
