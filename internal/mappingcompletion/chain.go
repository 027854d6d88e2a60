package mappingcompletion

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
)

// ChangeChainStepResult records one ChangeChain step's outcome: the
// registry it collected before applying, the targets that failed to
// apply (merge failures or Change.Apply errors), and a unified diff of
// the mapping set's rendering across the step (SPEC_FULL.md supplemented
// feature 3: step diagnostics for the `map` CLI subcommand to report,
// grounded on the teacher's Result/PipelineResult.Diagnostics shape).
type ChangeChainStepResult struct {
	Registry *ChangeRegistry
	Failures []*ApplyFailure
	Diff     string
}

// ChangeChain runs N contributor groups sequentially against the same
// mapping set, applying each group's registry before the next group's
// manager runs (spec §4.G: "used to sequence incompatible-in-parallel
// contributors"). Each group is a manager built from its own contributor
// set; two contributors that would collide if run in the same group can
// be placed in separate chain steps instead.
type ChangeChain struct {
	steps []*MappingsCompletionManager
}

// NewChangeChain builds a chain from ordered contributor groups, one
// MappingsCompletionManager per group.
func NewChangeChain(groups ...[]ChangeContributor) *ChangeChain {
	steps := make([]*MappingsCompletionManager, 0, len(groups))
	for _, g := range groups {
		steps = append(steps, NewMappingsCompletionManager(g...))
	}
	return &ChangeChain{steps: steps}
}

// Run executes every step in order, applying each step's registry to set
// before the next step's contributors see it. It stops and returns
// partial results on the first step that fails to even collect changes
// (a ContributionFailure); merge/apply failures within a step do not stop
// the chain, since spec §7 says merge failures "do not abort collection
// but fail at apply" and later steps may be unrelated to the failed
// target.
func (c *ChangeChain) Run(ctx *hypocontext.Context, set *mapping.MappingSet) ([]*ChangeChainStepResult, error) {
	results := make([]*ChangeChainStepResult, 0, len(c.steps))
	for _, step := range c.steps {
		registry, err := step.Run(ctx, set)
		if err != nil {
			return results, err
		}
		diffText, failures := RenderApplyDiff(registry, set)
		results = append(results, &ChangeChainStepResult{
			Registry: registry,
			Failures: failures,
			Diff:     diffText,
		})
	}
	return results, nil
}
