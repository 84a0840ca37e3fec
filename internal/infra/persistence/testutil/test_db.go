// Package testutil opens throwaway databases for repository and use case tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"homeserve/config"
	"homeserve/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDBOption customises the behaviour of MustOpenTestDB.
type TestDBOption func(*testDBConfig)

type testDBConfig struct {
	autoMigrate bool
	logger      *slog.Logger
}

// WithAutoMigrate creates every table after opening the test database.
func WithAutoMigrate() TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.autoMigrate = true
	}
}

// WithLogger routes GORM statement logs to logger instead of discarding them.
func WithLogger(logger *slog.Logger) TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.logger = logger
	}
}

// MustOpenTestDB opens a private in-memory SQLite database configured like the production one.
// The returned connection is automatically closed via t.Cleanup.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	cfg := testDBConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection serialises transactions the way row locks would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db = postgres.Configure(db, cfg.logger, &config.Config{})

	if cfg.autoMigrate {
		require.NoError(t, postgres.Migrate(context.Background(), db))
	}

	return db
}
