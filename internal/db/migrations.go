package db

import (
	"fmt"
	"log/slog"
)

// Migrate creates or updates the memos table
func (db *DB) Migrate() error {
	slog.Info("running database migrations", "driver", db.driver)
	if err := db.AutoMigrate(&Memo{}); err != nil {
		return fmt.Errorf("migrate memos: %w", err)
	}
	return nil
}
