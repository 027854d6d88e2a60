package hydration

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// Run executes both hydration phases over ctx: base hierarchy hydration,
// then this Framework's provider dispatch. Phase 2 does not start until
// phase 1 has completed for every class, since providers may rely on
// superMethod/childMethods links already being in place.
func (fw *Framework) Run(ctx *hypocontext.Context) error {
	if err := RunBaseHydration(ctx); err != nil {
		return err
	}
	return fw.runProviderHydration(ctx)
}

// runProviderHydration is phase 2: one task per core class, running every
// applicable class-level provider, then every method-level provider
// against each declared method, then every field-level provider against
// each declared field, all in declaration order. Tasks for distinct
// classes are independent; no ordering is assumed between them. The first
// failure propagates wrapped with the offending class and member name;
// other in-flight tasks are left to finish.
func (fw *Framework) runProviderHydration(ctx *hypocontext.Context) error {
	refs, err := ctx.CoreProviderSet().ListAll()
	if err != nil {
		return err
	}
	classes := make([]*model.ClassRecord, 0, len(refs))
	for _, ref := range refs {
		rec, ok, err := ctx.CoreProviderSet().Find(ref.Name)
		if err != nil {
			return err
		}
		if ok {
			classes = append(classes, rec)
		}
	}

	return hypocontext.RunAll(ctx.Pool(), classes, func(c *model.ClassRecord) error {
		return fw.hydrateOneClass(c, ctx)
	}, func(c *model.ClassRecord, err error) error {
		if cf, ok := err.(*ClassHydrationFailure); ok {
			cf.ClassName = c.Name
			return cf
		}
		return &ClassHydrationFailure{ClassName: c.Name, Err: err}
	})
}

func (fw *Framework) hydrateOneClass(c *model.ClassRecord, ctx *hypocontext.Context) error {
	for _, p := range fw.classProviders {
		if err := p.Hydrate(c, ctx); err != nil {
			return err
		}
	}
	for _, m := range c.Methods() {
		for _, p := range fw.methodProviders {
			if err := p.Hydrate(m, ctx); err != nil {
				return &ClassHydrationFailure{MemberName: m.Name + m.RawDescriptor, Err: err}
			}
		}
	}
	for _, f := range c.Fields() {
		for _, p := range fw.fieldProviders {
			if err := p.Hydrate(f, ctx); err != nil {
				return &ClassHydrationFailure{MemberName: f.Name, Err: err}
			}
		}
	}
	return nil
}
