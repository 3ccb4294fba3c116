package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/contract-risk/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'running',
	counts     TEXT,
	error      TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS scored_contracts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	match_key   TEXT NOT NULL,
	risk_score  INTEGER NOT NULL,
	row_json    TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_scored_run_id ON scored_contracts(run_id);
CREATE INDEX IF NOT EXISTS idx_scored_match_key ON scored_contracts(match_key);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		Status:    model.RunStatusRunning,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Status, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: create run")
	}
	return run, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, counts model.RunCounts) error {
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal counts")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, counts = ?, updated_at = ? WHERE id = ?`,
		model.RunStatusComplete, string(countsJSON), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: complete run")
	}
	return requireRow(res, runID)
}

func (s *SQLiteStore) FailRun(ctx context.Context, runID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		model.RunStatusFailed, msg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: fail run")
	}
	return requireRow(res, runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, counts, error, created_at, updated_at FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get run")
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, status, counts, error, created_at, updated_at FROM runs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) SaveScoredContracts(ctx context.Context, runID string, rows []model.EnrichedContract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scored_contracts (run_id, match_key, risk_score, row_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for _, r := range rows {
		rowJSON, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal row")
		}
		if _, err := stmt.ExecContext(ctx, runID, r.MatchKey, r.RiskScore, string(rowJSON)); err != nil {
			return eris.Wrap(err, "sqlite: insert scored contract")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit scored contracts")
}

func (s *SQLiteStore) ListScoredContracts(ctx context.Context, runID string) ([]model.EnrichedContract, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_json FROM scored_contracts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scored contracts")
	}
	defer rows.Close()

	var out []model.EnrichedContract
	for rows.Next() {
		var rowJSON string
		if err := rows.Scan(&rowJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan scored contract")
		}
		var r model.EnrichedContract
		if err := json.Unmarshal([]byte(rowJSON), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal scored contract")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate scored contracts")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (*model.Run, error) {
	var (
		run        model.Run
		countsJSON sql.NullString
		errMsg     sql.NullString
	)
	if err := r.Scan(&run.ID, &run.Status, &countsJSON, &errMsg, &run.CreatedAt, &run.UpdatedAt); err != nil {
		return nil, err
	}
	if countsJSON.Valid && countsJSON.String != "" {
		if err := json.Unmarshal([]byte(countsJSON.String), &run.Counts); err != nil {
			return nil, eris.Wrap(err, "unmarshal counts")
		}
	}
	run.Error = errMsg.String
	return &run, nil
}

func requireRow(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}
