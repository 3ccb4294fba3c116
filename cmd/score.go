package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/db"
	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/pipeline"
	"github.com/sells-group/contract-risk/internal/scorer"
	"github.com/sells-group/contract-risk/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run the full scoring pipeline over raw exports",
	Long: `Cleans the four raw exports, derives match keys, enriches contracts
with their bluecard confirmations, and computes the composite risk score.

Examples:
  # Score and write the enriched table to CSV
  contract-risk score --contracts contracts.csv --bluecards bluecards.xlsx --output scored.csv

  # Include presenter and lead exports in the run summary
  contract-risk score --contracts c.csv --bluecards b.csv --presenters p.csv --leads l.csv

  # Persist the run and scored rows to the configured store
  contract-risk score --contracts c.csv --bluecards b.csv --save`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("contracts", "", "contracts export (csv or xlsx)")
	f.String("bluecards", "", "bluecard export (csv or xlsx)")
	f.String("presenters", "", "presenter export (csv or xlsx)")
	f.String("leads", "", "lead export (csv or xlsx)")
	f.String("output", "", "scored CSV output path (default: summary to stdout)")
	f.Bool("save", false, "persist the run and scored rows to the configured store")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "score"))
	f := cmd.Flags()

	paths := inputPaths{}
	paths.Contracts, _ = f.GetString("contracts")
	paths.BlueCards, _ = f.GetString("bluecards")
	paths.Presenters, _ = f.GetString("presenters")
	paths.Leads, _ = f.GetString("leads")

	in, err := loadInputs(ctx, paths)
	if err != nil {
		return err
	}

	result, err := pipeline.New(scorer.New(cfg.Scorer)).Run(ctx, in)
	if err != nil {
		return err
	}

	if save, _ := f.GetBool("save"); save {
		if err := saveResult(ctx, result); err != nil {
			return err
		}
	}

	if output, _ := f.GetString("output"); output != "" {
		out, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "create %s", output)
		}
		defer out.Close()
		if err := writeScoredCSV(out, result.Rows); err != nil {
			return err
		}
		log.Info("wrote scored output", zap.String("path", output), zap.Int("rows", len(result.Rows)))
		return nil
	}

	printSummary(cmd.OutOrStdout(), result.Counts, result.Rows)
	return nil
}

// saveResult persists a completed run to the configured backend.
func saveResult(ctx context.Context, result *pipeline.Result) error {
	switch cfg.Store.Driver {
	case "postgres":
		return savePostgres(ctx, result.Rows)
	case "sqlite", "":
		return saveSQLite(ctx, result)
	default:
		return eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func saveSQLite(ctx context.Context, result *pipeline.Result) error {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	run, err := s.CreateRun(ctx)
	if err != nil {
		return err
	}
	if err := s.SaveScoredContracts(ctx, run.ID, result.Rows); err != nil {
		ferr := s.FailRun(ctx, run.ID, err)
		if ferr != nil {
			zap.L().Warn("mark run failed", zap.Error(ferr))
		}
		return err
	}
	if err := s.CompleteRun(ctx, run.ID, result.Counts); err != nil {
		return err
	}
	zap.L().Info("saved run", zap.String("run_id", run.ID), zap.Int("rows", len(result.Rows)))
	return nil
}

func savePostgres(ctx context.Context, rows []model.EnrichedContract) error {
	if cfg.Store.DatabaseURL == "" {
		return eris.New("store.database_url is required for the postgres driver")
	}
	pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return eris.Wrap(err, "connect postgres")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}
	runID := newRunID()
	n, err := db.UpsertScoredContracts(ctx, pool, runID, rows)
	if err != nil {
		return err
	}
	zap.L().Info("saved run", zap.String("run_id", runID), zap.Int64("rows", n))
	return nil
}

func newRunID() string { return uuid.NewString() }
