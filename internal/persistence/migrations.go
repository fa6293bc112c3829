package persistence

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-engine/pkg/util"
)

const migrationsDir = "migrations"

// RunMigrations applies the audit-store schema migrations in lexical order.
// A missing directory or a failing statement is a deployment configuration
// bug and aborts startup rather than leaving a partial audit schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping audit store migrations")
		return nil
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return util.NewConfigurationError("read migrations directory",
			map[string]any{"dir": migrationsDir, "error": err.Error()})
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		statements, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return util.NewConfigurationError("read migration",
				map[string]any{"file": name, "error": err.Error()})
		}
		logger.Info("applying audit store migration", zap.String("file", name))
		if _, err := pool.Exec(ctx, string(statements)); err != nil {
			return util.NewConfigurationError("apply migration",
				map[string]any{"file": name, "error": err.Error()})
		}
	}

	logger.Info("audit store schema up to date", zap.Int("migrations", len(names)))
	return nil
}
