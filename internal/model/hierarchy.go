package model

// ClassHierarchyOf walks the resolved SuperClass/Interfaces links reachable
// from c, in the same depth-first, super-before-interfaces,
// declaration order that base hydration uses to resolve overrides. Centralizing
// the walk here means every hydrator that needs "ancestors of c" agrees on
// the same order instead of reimplementing DFS independently.
type ClassHierarchyOf struct {
	root *ClassRecord
}

// NewClassHierarchyOf wraps c for hierarchy queries.
func NewClassHierarchyOf(c *ClassRecord) *ClassHierarchyOf {
	return &ClassHierarchyOf{root: c}
}

// Ancestors returns every class reachable by repeatedly following
// SuperClass then Interfaces, depth-first, in declaration order, without
// repeats. A class that fails to resolve (absent from any provider, or
// resolution folded to absent under a lenient classpath) simply ends that
// branch of the walk.
func (h *ClassHierarchyOf) Ancestors() ([]*ClassRecord, error) {
	var out []*ClassRecord
	seen := make(map[*ClassRecord]bool)
	var walk func(c *ClassRecord) error
	walk = func(c *ClassRecord) error {
		super, ok, err := c.SuperClass()
		if err != nil {
			return err
		}
		if ok && !seen[super] {
			seen[super] = true
			out = append(out, super)
			if err := walk(super); err != nil {
				return err
			}
		}
		ifaces, err := c.Interfaces()
		if err != nil {
			return err
		}
		for _, iface := range ifaces {
			if seen[iface] {
				continue
			}
			seen[iface] = true
			out = append(out, iface)
			if err := walk(iface); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(h.root); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOverrideTarget searches Ancestors for the first class declaring a
// method with name/descriptor that is itself override-eligible
// (MethodRecord.CanBeOverridden), matching §4.E's DFS-first-match rule.
func (h *ClassHierarchyOf) FindOverrideTarget(name, descriptor string) (*MethodRecord, bool, error) {
	ancestors, err := h.Ancestors()
	if err != nil {
		return nil, false, err
	}
	for _, anc := range ancestors {
		m, ok := anc.Method(name, descriptor)
		if ok && m.CanBeOverridden() {
			return m, true, nil
		}
	}
	return nil, false, nil
}
