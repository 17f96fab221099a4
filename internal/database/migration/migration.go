package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// SentinelTable is the table whose presence means the schema is in place.
const SentinelTable = "decrypt_audit"

var steps = []migrationStep{
	{
		Name: "create_table_decrypt_audit",
		SQL: `CREATE TABLE IF NOT EXISTS decrypt_audit (
  id          UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  request_id  TEXT        NOT NULL,
  outcome     TEXT        NOT NULL,
  status      INTEGER     NOT NULL,
  input_bytes BIGINT      NOT NULL CHECK (input_bytes >= 0),
  page_count  INTEGER     NOT NULL DEFAULT 0 CHECK (page_count >= 0),
  duration_ms BIGINT      NOT NULL CHECK (duration_ms >= 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_decrypt_audit_outcome",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_decrypt_audit_outcome ON decrypt_audit (outcome);`,
	},
	{
		Name: "create_index_decrypt_audit_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_decrypt_audit_created_at ON decrypt_audit (created_at);`,
	},
	{
		Name: "create_index_decrypt_audit_request_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_decrypt_audit_request_id ON decrypt_audit (request_id);`,
	},
}

// EnsureMigrated checks whether the audit table exists and runs every step if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public." + SentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
