package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/contract-risk/internal/model"
	"github.com/sells-group/contract-risk/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted scoring runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(ctx); err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		status, _ := cmd.Flags().GetString("status")

		runs, err := s.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(status),
			Limit:  limit,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %-8s  %s  contracts=%d scored=%d misses=%d\n",
				r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.Counts.ContractsCleaned, r.Counts.Enriched, r.Counts.JoinMisses,
			)
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "no runs found")
		}
		return nil
	},
}

func init() {
	f := runsCmd.Flags()
	f.Int("limit", 20, "maximum runs to list")
	f.String("status", "", "filter by status (running, complete, failed)")
	rootCmd.AddCommand(runsCmd)
}
