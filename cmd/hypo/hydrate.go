package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypoanalysis/hypo/internal/hydration"
	"github.com/hypoanalysis/hypo/internal/hydrators"
	"github.com/hypoanalysis/hypo/internal/hypoconfig"
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
	"github.com/hypoanalysis/hypo/internal/telemetry"
)

func newHydrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "hydrate",
		Short:              "Run provisioning and hydration over a set of roots and report summary counts",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHydrate(args)
		},
	}
	return cmd
}

func buildHydrationFramework() *hydration.Framework {
	return hydration.NewFramework(
		[]hydration.Provider[*model.ClassRecord]{
			hydrators.NewLambdaClosureBuilder(),
			hydrators.NewLocalClassClosureBuilder(),
		},
		[]hydration.Provider[*model.MethodRecord]{
			hydrators.NewSyntheticBridgeLinker(),
			hydrators.NewSuperConstructorLinker(),
		},
		nil,
	)
}

func runHydrate(args []string) error {
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

	refs, err := ctx.CoreProviderSet().ListAll()
	if err != nil {
		return err
	}

	start := time.Now()
	fw := buildHydrationFramework()
	runErr := fw.Run(ctx)
	duration := time.Since(start)

	failureCount := 0
	if runErr != nil {
		failureCount = 1
	}

	if store, err := telemetry.Open(cfg.TelemetryDSN); err == nil {
		_ = store.RecordRun(telemetry.RunRecord{
			Phase:        telemetry.PhaseHydration,
			StartedAt:    start,
			Duration:     duration,
			ClassCount:   len(refs),
			FailureCount: failureCount,
		})
		store.Close()
	}

	if runErr != nil {
		return runErr
	}

	fmt.Printf("hydrated %d classes in %s\n", len(refs), duration)
	return nil
}
