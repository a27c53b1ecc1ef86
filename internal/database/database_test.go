package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
)

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"./data/club.db", "file:./data/club.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:club.db?mode=ro", "file:club.db?mode=ro&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:club.db?_pragma=journal_mode(WAL)", "file:club.db?_pragma=journal_mode(WAL)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sqliteDSN(tt.in); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

// WHY: both the server and clubctl migrate on start, so a second run must be a no-op.
func TestMigrate(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "club.db"),
	})
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	for i := range 2 {
		if err := Migrate(ctx, db.DB, config.DriverSQLite); err != nil {
			t.Fatalf("Migrate() run %d returned unexpected error: %v", i+1, err)
		}
	}

	var tables int
	err = db.GetContext(ctx, &tables, `SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('member', 'contribution', 'holding_transaction', 'price_quote')`)
	if err != nil {
		t.Fatalf("Failed to count tables: %v", err)
	}
	if tables != 4 {
		t.Errorf("Expected 4 ledger tables, got %d", tables)
	}

	var fk int
	if err := db.GetContext(ctx, &fk, "PRAGMA foreign_keys"); err != nil {
		t.Fatalf("Failed to read pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("Expected foreign_keys enabled, got %d", fk)
	}

	if err := HealthCheck(ctx, db); err != nil {
		t.Errorf("HealthCheck() returned unexpected error: %v", err)
	}
}
