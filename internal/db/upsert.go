// Package db writes scored contracts to Postgres in bulk. The upsert
// goes through a temp table so re-running a batch for the same run
// replaces its rows rather than duplicating them.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/sells-group/contract-risk/internal/model"
)

// Pool is the subset of pgxpool.Pool the upsert needs; pgxmock
// satisfies it in tests.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Execer runs a single statement; pgxpool.Pool and pgxmock both
// satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// scoredColumns is the scored_contracts column list, in insert order.
var scoredColumns = []string{
	"run_id", "row_ord", "match_key", "presenter", "venue", "agent",
	"blue_card_number", "risk_score", "overdue_deposit_flag",
	"overdue_signature_flag", "status_risk_flag", "financial_delta",
	"issue_to_event_days", "is_first_time_presenter", "financial_anomaly_flag",
}

const scoredTable = "risk.scored_contracts"

// UpsertScoredContracts bulk-writes scored rows for one run. The
// conflict key is (run_id, row_ord): match keys repeat within a run
// (many contracts can share one), so each row carries its position in
// the batch and a re-run of the same run replaces row for row.
func UpsertScoredContracts(ctx context.Context, pool Pool, runID string, rows []model.EnrichedContract) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	return bulkUpsert(ctx, pool, upsertConfig{
		Table:        scoredTable,
		Columns:      scoredColumns,
		ConflictKeys: []string{"run_id", "row_ord"},
	}, scoredValues(runID, rows))
}

// scoredValues flattens rows into COPY tuples, stamping each with its
// 0-based batch ordinal.
func scoredValues(runID string, rows []model.EnrichedContract) [][]any {
	values := make([][]any, 0, len(rows))
	for i, r := range rows {
		values = append(values, []any{
			runID, i, r.MatchKey,
			r.PresenterClean, r.VenueClean, r.AgentClean,
			r.BlueCardNumber, r.RiskScore,
			r.OverdueDepositFlag, r.OverdueSignatureFlag, r.StatusRiskFlag,
			r.FinancialDelta, r.IssueToEventDays,
			r.FirstTimePresenter, r.FinancialAnomalyFlag,
		})
	}
	return values
}

// upsertConfig defines the parameters for a bulk upsert operation.
type upsertConfig struct {
	Table        string
	Columns      []string
	ConflictKeys []string
}

// bulkUpsert performs a bulk upsert via a temp table:
// COPY into the temp table, then INSERT ... ON CONFLICT DO UPDATE into
// the target.
func bulkUpsert(ctx context.Context, pool Pool, cfg upsertConfig, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: upsert: begin tx")
	}
	defer tx.Rollback(ctx)

	tempTable := fmt.Sprintf("_tmp_upsert_%s", strings.ReplaceAll(cfg.Table, ".", "_"))

	createSQL := fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{tempTable}.Sanitize(),
		sanitizeTable(cfg.Table),
	)
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: create temp table for %s", cfg.Table)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tempTable}, cfg.Columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: upsert: COPY into temp table for %s", cfg.Table)
	}

	conflictSet := make(map[string]bool, len(cfg.ConflictKeys))
	for _, k := range cfg.ConflictKeys {
		conflictSet[k] = true
	}
	var setClauses []string
	for _, col := range cfg.Columns {
		if conflictSet[col] {
			continue
		}
		ident := pgx.Identifier{col}.Sanitize()
		setClauses = append(setClauses, fmt.Sprintf("%s = EXCLUDED.%s", ident, ident))
	}

	upsertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		sanitizeTable(cfg.Table),
		quoteAndJoin(cfg.Columns),
		quoteAndJoin(cfg.Columns),
		pgx.Identifier{tempTable}.Sanitize(),
		quoteAndJoin(cfg.ConflictKeys),
		strings.Join(setClauses, ", "),
	)
	tag, err := tx.Exec(ctx, upsertSQL)
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert: insert into %s", cfg.Table)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: upsert: commit")
	}
	return tag.RowsAffected(), nil
}

// sanitizeTable quotes a possibly schema-qualified table name.
func sanitizeTable(table string) string {
	parts := strings.Split(table, ".")
	return pgx.Identifier(parts).Sanitize()
}

func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
