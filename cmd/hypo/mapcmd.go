package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypoanalysis/hypo/internal/hypoconfig"
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
	"github.com/hypoanalysis/hypo/internal/mappingcompletion"
	"github.com/hypoanalysis/hypo/internal/telemetry"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "map",
		Short:              "Run mappings completion over a hydrated model and a mapping set, printing merge diagnostics",
		Long:               "Mapping-set file I/O is out of scope (spec §1); this subcommand starts from an empty in-memory MappingSet as a placeholder for a real one loaded by the caller, runs hydration, then the default contributor chain, and prints a unified diff of the result plus any merge diagnostics.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(args)
		},
	}
	return cmd
}

func runMap(args []string) error {
	cfg, _, err := hypoconfig.BuildFromFlags(hypoconfig.LoadEnvOverlay(hypoconfig.Default()), args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	coreProviders, err := hypoconfig.BuildProviders(cfg.CoreRoots, unwiredDecoder{}, false)
	if err != nil {
		return err
	}
	contextProviders, err := hypoconfig.BuildProviders(cfg.ContextRoots, unwiredDecoder{}, true)
	if err != nil {
		return err
	}

	ctx := hypocontext.NewContext(cfg.ToContextConfig(), coreProviders, contextProviders)
	defer ctx.Close()

	fw := buildHydrationFramework()
	if err := fw.Run(ctx); err != nil {
		return fmt.Errorf("hydration must complete before mappings completion: %w", err)
	}

	set := mapping.NewMappingSet() // placeholder: a real CLI loads this from a caller-supplied mapping set

	chain := mappingcompletion.NewChangeChain([]mappingcompletion.ChangeContributor{
		mappingcompletion.NewSyntheticBridgeMappingContributor(),
	})

	start := time.Now()
	results, err := chain.Run(ctx, set)
	duration := time.Since(start)

	failureCount := 0
	for _, r := range results {
		failureCount += len(r.Failures)
	}

	if store, storeErr := telemetry.Open(cfg.TelemetryDSN); storeErr == nil {
		_ = store.RecordRun(telemetry.RunRecord{
			Phase:        telemetry.PhaseMappingsCompletion,
			StartedAt:    start,
			Duration:     duration,
			FailureCount: failureCount,
		})
		store.Close()
	}

	if err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("--- step %d ---\n", i+1)
		if len(r.Failures) == 0 {
			fmt.Println("no merge failures")
		}
		for _, f := range r.Failures {
			fmt.Printf("failed: %v\n", f)
		}
		fmt.Println(r.Diff)
	}
	return nil
}
