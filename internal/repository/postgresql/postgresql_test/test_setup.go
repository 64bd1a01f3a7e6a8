package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/database"
)

type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok=false when it is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

func (t *TestDatabaseSetup) TruncateSessions(ctx context.Context) error {
	_, err := t.DB.Exec(ctx, "TRUNCATE TABLE console_sessions")
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
