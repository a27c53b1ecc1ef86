package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/database"
)

// SetupTestDB opens a private in-memory ledger through database.Open, so the same
// pragmas as production apply, and migrates it to the latest schema.
// The database is closed when the test completes.
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    testutil.NewMember().Build(t, db)
//	}
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// A named memory database per test keeps parallel tests apart.
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(context.Background(), db.DB, config.DriverSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
