package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hypoanalysis/hypo/internal/hypoconfig"
	"github.com/hypoanalysis/hypo/internal/telemetry"
)

func newStatsCmd() *cobra.Command {
	var phase string
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print recently recorded hydration and mappings-completion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(phase, limit)
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "", "restrict to one phase (hydration, mappings-completion)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to print")
	return cmd
}

func runStats(phase string, limit int) error {
	cfg := hypoconfig.LoadEnvOverlay(hypoconfig.Default())

	store, err := telemetry.Open(cfg.TelemetryDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(telemetry.Phase(phase), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-20s  %10s  %6s  %6s\n", "ID", "PHASE", "STARTED", "DURATION", "CLASS", "FAIL")
	for _, r := range runs {
		fmt.Printf("%-36s  %-20s  %-20s  %9dms  %6d  %6d\n",
			r.ID, r.Phase, r.StartedAt.Format("2006-01-02 15:04:05"), r.DurationMS, r.ClassCount, r.FailureCount)
	}
	return nil
}
