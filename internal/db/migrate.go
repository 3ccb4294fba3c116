package db

import (
	"context"

	"github.com/rotisserie/eris"
)

const scoredMigration = `
CREATE SCHEMA IF NOT EXISTS risk;

CREATE TABLE IF NOT EXISTS risk.scored_contracts (
	run_id                  TEXT NOT NULL,
	row_ord                 INTEGER NOT NULL,
	match_key               TEXT NOT NULL,
	presenter               TEXT,
	venue                   TEXT,
	agent                   TEXT,
	blue_card_number        TEXT,
	risk_score              INTEGER NOT NULL,
	overdue_deposit_flag    SMALLINT NOT NULL DEFAULT 0,
	overdue_signature_flag  SMALLINT NOT NULL DEFAULT 0,
	status_risk_flag        SMALLINT NOT NULL DEFAULT 0,
	financial_delta         DOUBLE PRECISION,
	issue_to_event_days     INTEGER,
	is_first_time_presenter BOOLEAN NOT NULL DEFAULT FALSE,
	financial_anomaly_flag  SMALLINT NOT NULL DEFAULT 0,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, row_ord)
);

CREATE INDEX IF NOT EXISTS idx_scored_contracts_match_key ON risk.scored_contracts(match_key);
CREATE INDEX IF NOT EXISTS idx_scored_contracts_score ON risk.scored_contracts(risk_score);
`

// Migrate creates the risk schema and scored_contracts table.
func Migrate(ctx context.Context, pool Execer) error {
	if _, err := pool.Exec(ctx, scoredMigration); err != nil {
		return eris.Wrap(err, "db: migrate scored_contracts")
	}
	return nil
}
