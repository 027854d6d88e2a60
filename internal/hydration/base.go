package hydration

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// RunBaseHydration is phase 1: for every class in ctx's core provider set,
// resolve its direct super-class and interface references and register
// child-class back-links, then resolve each eligible method's override
// target and register the reciprocal childMethods link. The walk for
// overrides is super-class first, then interfaces in declaration order,
// stopping at the first ancestor declaring an override-eligible method
// with the identical name and erased descriptor. Only core classes act as
// the source of a child-override relation; an ancestor may still resolve
// into a context-only class.
func RunBaseHydration(ctx *hypocontext.Context) error {
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
		return hydrateBaseHierarchy(c)
	}, func(c *model.ClassRecord, err error) error {
		return &ClassHydrationFailure{ClassName: c.Name, Err: err}
	})
}

func hydrateBaseHierarchy(c *model.ClassRecord) error {
	super, ok, err := c.SuperClass()
	if err != nil {
		return err
	}
	if ok {
		super.AddChildClass(c)
	}

	ifaces, err := c.Interfaces()
	if err != nil {
		return err
	}
	for _, iface := range ifaces {
		iface.AddChildClass(c)
	}

	hierarchy := model.NewClassHierarchyOf(c)
	ancestors, err := hierarchy.Ancestors()
	if err != nil {
		return err
	}

	for _, m := range c.Methods() {
		if !m.CanBeOverridden() {
			continue
		}
		target, ok := findOverrideTarget(ancestors, m.Name, m.RawDescriptor)
		if !ok {
			continue
		}
		m.SetSuperMethod(target)
		target.AddChildMethod(m)
	}
	return nil
}

func findOverrideTarget(ancestors []*model.ClassRecord, name, descriptor string) (*model.MethodRecord, bool) {
	for _, anc := range ancestors {
		m, ok := anc.Method(name, descriptor)
		if ok && m.CanBeOverridden() {
			return m, true
		}
	}
	return nil, false
}
