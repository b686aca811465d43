package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Live-row uniqueness (sku, family name, email) is enforced with partial
// unique indexes so that soft-deleted rows do not block reuse of the value.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name            TEXT        NOT NULL DEFAULT '',
  email           TEXT        NOT NULL,
  role            TEXT        NOT NULL DEFAULT '',
  profile_picture TEXT        NOT NULL DEFAULT '',
  account_access  BOOLEAN     NOT NULL DEFAULT TRUE,
  password        TEXT        NOT NULL,
  hash            TEXT        NOT NULL DEFAULT '',
  secret          TEXT        NOT NULL DEFAULT '',
  forgot_password BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at      TIMESTAMPTZ
);`,
	},
	{
		Name: "create_unique_index_users_email_live",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_email_live ON users (email) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_table_attribute_groups",
		SQL: `CREATE TABLE IF NOT EXISTS attribute_groups (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL DEFAULT '',
  "values"   JSONB,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_product_families",
		SQL: `CREATE TABLE IF NOT EXISTS product_families (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_unique_index_product_families_name_live",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_product_families_name_live ON product_families (name) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_table_family_attributes",
		SQL: `CREATE TABLE IF NOT EXISTS family_attributes (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  family_id          UUID        NOT NULL REFERENCES product_families (id),
  attribute_group_id UUID        NOT NULL REFERENCES attribute_groups (id),
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at         TIMESTAMPTZ
);`,
	},
	{
		Name: "create_unique_index_family_attributes_pair_live",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_family_attributes_pair_live ON family_attributes (family_id, attribute_group_id) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id           UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  sku          TEXT             NOT NULL,
  name         TEXT             NOT NULL DEFAULT '',
  description  TEXT             NOT NULL DEFAULT '',
  price        DOUBLE PRECISION NOT NULL DEFAULT 0,
  family_id    UUID             REFERENCES product_families (id),
  details      JSONB,
  images       JSONB,
  is_archived  BOOLEAN          NOT NULL DEFAULT TRUE,
  is_published BOOLEAN          NOT NULL DEFAULT FALSE,
  created_at   TIMESTAMPTZ      NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ      NOT NULL DEFAULT now(),
  deleted_at   TIMESTAMPTZ
);`,
	},
	{
		Name: "create_unique_index_products_sku_live",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_products_sku_live ON products (sku) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_index_products_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_name ON products (name);`,
	},
	{
		Name: "create_index_family_attributes_family_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_family_attributes_family_id ON family_attributes (family_id);`,
	},
}

// EnsureMigrated checks if the 'products' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.products') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
