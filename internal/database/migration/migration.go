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

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_candidates",
		SQL: `CREATE TABLE IF NOT EXISTS candidates (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  exam_number   TEXT        NOT NULL UNIQUE,
  first_name    TEXT        NOT NULL,
  last_name     TEXT        NOT NULL,
  date_of_birth DATE        NOT NULL,
  gender        TEXT        NOT NULL DEFAULT '',
  centre_code   TEXT        NOT NULL DEFAULT '',
  photo_path    TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_candidates_centre_code",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_centre_code ON candidates (centre_code);`,
	},
	{
		Name: "create_table_exam_subjects",
		SQL: `CREATE TABLE IF NOT EXISTS exam_subjects (
  id               UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  code             TEXT             NOT NULL UNIQUE,
  name             TEXT             NOT NULL,
  max_objective    DOUBLE PRECISION NOT NULL CHECK (max_objective > 0),
  max_essay        DOUBLE PRECISION NOT NULL CHECK (max_essay > 0),
  max_practical    DOUBLE PRECISION NOT NULL CHECK (max_practical >= 0),
  objective_weight DOUBLE PRECISION NOT NULL,
  essay_weight     DOUBLE PRECISION NOT NULL,
  practical_weight DOUBLE PRECISION NOT NULL,
  has_practical    BOOLEAN          NOT NULL DEFAULT FALSE,
  created_at       TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_subject_scores",
		SQL: `CREATE TABLE IF NOT EXISTS subject_scores (
  id             UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  subject_id     UUID             NOT NULL REFERENCES exam_subjects (id) ON DELETE CASCADE,
  exam_number    TEXT             NOT NULL,
  raw_objective  DOUBLE PRECISION,
  raw_essay      DOUBLE PRECISION,
  raw_practical  DOUBLE PRECISION,
  norm_objective DOUBLE PRECISION NOT NULL DEFAULT 0,
  norm_essay     DOUBLE PRECISION NOT NULL DEFAULT 0,
  norm_practical DOUBLE PRECISION NOT NULL DEFAULT 0,
  total          DOUBLE PRECISION NOT NULL DEFAULT 0,
  grade          TEXT             NOT NULL DEFAULT '',
  valid          BOOLEAN          NOT NULL DEFAULT FALSE,
  updated_at     TIMESTAMPTZ      NOT NULL DEFAULT now(),
  UNIQUE (subject_id, exam_number)
);`,
	},
	{
		Name: "create_index_subject_scores_total",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subject_scores_total ON subject_scores (subject_id, total);`,
	},
	{
		Name: "create_table_examiners",
		SQL: `CREATE TABLE IF NOT EXISTS examiners (
  id        UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name      TEXT    NOT NULL,
  specialty TEXT    NOT NULL,
  capacity  INTEGER NOT NULL CHECK (capacity > 0),
  venue     TEXT    NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_examiners_specialty",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_examiners_specialty ON examiners (specialty);`,
	},
	{
		Name: "create_table_allocations",
		SQL: `CREATE TABLE IF NOT EXISTS allocations (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  subject_id  UUID    NOT NULL REFERENCES exam_subjects (id) ON DELETE CASCADE,
  examiner_id UUID    NOT NULL REFERENCES examiners (id) ON DELETE CASCADE,
  scripts     INTEGER NOT NULL CHECK (scripts > 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (subject_id, examiner_id)
);`,
	},
	{
		Name: "create_table_certificates",
		SQL: `CREATE TABLE IF NOT EXISTS certificates (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  number      TEXT        NOT NULL UNIQUE,
  exam_number TEXT        NOT NULL REFERENCES candidates (exam_number) ON DELETE CASCADE,
  exam_year   INTEGER     NOT NULL,
  status      TEXT        NOT NULL DEFAULT 'pending',
  pdf_path    TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_certificates_exam_number",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_certificates_exam_number ON certificates (exam_number);`,
	},
}

// EnsureMigrated checks if the 'candidates' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.candidates') IS NOT NULL"
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
