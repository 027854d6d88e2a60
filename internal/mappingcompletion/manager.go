package mappingcompletion

import (
	"sync"

	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
	"github.com/hypoanalysis/hypo/internal/model"
)

// MappingsCompletionManager is spec §4.G's
// MappingsCompletionManager: given a mapping set and a (possibly
// composite) contributor, it dispatches one task per already-mapped class
// to the worker pool, depth-first into inner-class mappings, then a
// second pass over every core-provider class whose name no mapping
// visited (so a contributor can add mappings outright), awaits every
// task, and returns the accumulated registry unapplied.
type MappingsCompletionManager struct {
	contributor ChangeContributor
}

// NewMappingsCompletionManager builds a manager whose contributors run in
// the given order, treated as a single composite per class visit.
func NewMappingsCompletionManager(contributors ...ChangeContributor) *MappingsCompletionManager {
	return &MappingsCompletionManager{contributor: NewCompositeContributor(contributors...)}
}

// Run executes one completion pass and returns the still-unapplied
// registry. Hydration must already have completed over ctx (spec §4.G:
// "mappings completion never runs before hydration", a precondition, not
// enforced here).
func (m *MappingsCompletionManager) Run(ctx *hypocontext.Context, set *mapping.MappingSet) (*ChangeRegistry, error) {
	registry := NewChangeRegistry()

	var visited sync.Map // string -> struct{}

	var mapped []mapping.ClassMapping
	walkDepthFirst(set, func(cm mapping.ClassMapping) {
		mapped = append(mapped, cm)
	})

	err := hypocontext.RunAll(ctx.Pool(), mapped, func(cm mapping.ClassMapping) error {
		name := cm.ObfuscatedName()
		visited.Store(name, struct{}{})
		rec, ok, err := ctx.CoreProviderSet().Find(name)
		if err != nil {
			return err
		}
		var classRecord *model.ClassRecord
		if ok {
			classRecord = rec
		}
		return m.contributor.Contribute(classRecord, cm, ctx, registry)
	}, func(cm mapping.ClassMapping, err error) error {
		return &ContributionFailure{ClassName: cm.ObfuscatedName(), Err: err}
	})
	if err != nil {
		return registry, err
	}

	refs, err := ctx.CoreProviderSet().ListAll()
	if err != nil {
		return registry, err
	}
	var unmapped []*model.ClassRecord
	for _, ref := range refs {
		if _, seen := visited.Load(ref.Name); seen {
			continue
		}
		rec, ok, err := ctx.CoreProviderSet().Find(ref.Name)
		if err != nil {
			return registry, err
		}
		if ok {
			unmapped = append(unmapped, rec)
		}
	}

	err = hypocontext.RunAll(ctx.Pool(), unmapped, func(c *model.ClassRecord) error {
		return m.contributor.Contribute(c, nil, ctx, registry)
	}, func(c *model.ClassRecord, err error) error {
		return &ContributionFailure{ClassName: c.Name, Err: err}
	})
	return registry, err
}
