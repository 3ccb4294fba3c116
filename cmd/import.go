package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contract-risk/internal/cleaner"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate raw exports by cleaning them and reporting drop counts",
	Long: `Reads the raw exports, applies each table's cleaning rules, and
reports how many rows survive. Nothing is scored or persisted; use this
to sanity-check an export before a scoring run.`,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.String("contracts", "", "contracts export (csv or xlsx)")
	f.String("bluecards", "", "bluecard export (csv or xlsx)")
	f.String("presenters", "", "presenter export (csv or xlsx)")
	f.String("leads", "", "lead export (csv or xlsx)")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	log := zap.L().With(zap.String("command", "import"))
	report := func(table string, raw, cleaned int) {
		log.Info("cleaned table",
			zap.String("table", table),
			zap.Int("rows_in", raw),
			zap.Int("rows_out", cleaned),
			zap.Int("dropped", raw-cleaned),
		)
	}

	report("contracts", len(in.Contracts), len(cleaner.Contracts(in.Contracts)))
	report("bluecards", len(in.BlueCards), len(cleaner.BlueCards(in.BlueCards)))
	report("presenters", len(in.Presenters), len(cleaner.Presenters(in.Presenters)))
	report("leads", len(in.Leads), len(cleaner.Leads(in.Leads)))

	return nil
}
