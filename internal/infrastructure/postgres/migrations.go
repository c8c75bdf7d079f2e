package postgres

import (
	"context"
	"fmt"
)

// migration paso de esquema idempotente (CREATE ... IF NOT EXISTS).
type migration struct {
	name       string
	statements []string
}

// migrations esquema completo en orden de aplicación.
var migrations = []migration{
	{
		name: "create_candidates",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS candidates (
				id            BIGSERIAL PRIMARY KEY,
				email         TEXT NOT NULL,
				first_name    TEXT NOT NULL,
				last_name     TEXT NOT NULL DEFAULT '',
				position      TEXT,
				department    TEXT,
				start_date    DATE,
				status        TEXT NOT NULL DEFAULT 'pending',
				progress      INTEGER NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
				last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, `
			CREATE UNIQUE INDEX IF NOT EXISTS ux_candidates_email ON candidates (lower(email))`, `
			CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates (status)`,
		},
	},
	{
		name: "create_onboarding_steps",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS onboarding_steps (
				id              BIGSERIAL PRIMARY KEY,
				candidate_id    BIGINT,
				candidate_email TEXT NOT NULL,
				step_id         TEXT NOT NULL,
				status          TEXT NOT NULL,
				data            TEXT,
				updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, `
			CREATE INDEX IF NOT EXISTS idx_onboarding_steps_candidate
				ON onboarding_steps (candidate_id, step_id, updated_at DESC, id DESC)`, `
			CREATE INDEX IF NOT EXISTS idx_onboarding_steps_email
				ON onboarding_steps (lower(candidate_email), step_id, updated_at DESC, id DESC)`, `
			CREATE INDEX IF NOT EXISTS idx_onboarding_steps_recent
				ON onboarding_steps (updated_at DESC, id DESC)`,
		},
	},
	{
		name: "create_users",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				email         TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				first_name    TEXT NOT NULL DEFAULT '',
				last_name     TEXT NOT NULL DEFAULT '',
				position      TEXT,
				department    TEXT,
				role          TEXT NOT NULL CHECK (role IN ('candidate', 'hr', 'admin')),
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, `
			CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email))`,
		},
	},
	{
		name: "create_notifications",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS notifications (
				id         BIGSERIAL PRIMARY KEY,
				user_email TEXT NOT NULL,
				type       TEXT NOT NULL DEFAULT 'info',
				title      TEXT NOT NULL,
				message    TEXT NOT NULL DEFAULT '',
				read       BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, `
			CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (lower(user_email), created_at DESC)`,
		},
	},
	{
		name: "create_documents",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS documents (
				id           BIGSERIAL PRIMARY KEY,
				candidate_id BIGINT NOT NULL REFERENCES candidates (id),
				file_name    TEXT NOT NULL,
				file_type    TEXT NOT NULL,
				file_size    BIGINT NOT NULL,
				object_key   TEXT NOT NULL,
				url          TEXT NOT NULL,
				uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, `
			CREATE INDEX IF NOT EXISTS idx_documents_candidate ON documents (candidate_id)`,
		},
	},
}

// Migrate aplica el esquema. Es seguro ejecutarlo en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	for _, m := range migrations {
		for _, stmt := range m.statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migración %s: %w", m.name, err)
			}
		}
	}
	return nil
}
