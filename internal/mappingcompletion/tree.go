package mappingcompletion

import "github.com/hypoanalysis/hypo/internal/mapping"

// walkDepthFirst visits every class mapping in set: each top-level class,
// then its inner classes depth-first, matching spec §4.G's traversal order
// for dispatching completion tasks.
func walkDepthFirst(set *mapping.MappingSet, visit func(mapping.ClassMapping)) {
	for _, tl := range set.TopLevelClasses() {
		visit(tl)
		walkInner(tl, visit)
	}
}

func walkInner(parent mapping.ClassMapping, visit func(mapping.ClassMapping)) {
	for _, ic := range parent.InnerClasses() {
		visit(ic)
		walkInner(ic, visit)
	}
}

// FindClassMapping locates the class mapping for name anywhere in set,
// searching top-level classes first and then descending depth-first into
// inner classes.
func FindClassMapping(set *mapping.MappingSet, name string) (mapping.ClassMapping, bool) {
	var found mapping.ClassMapping
	walkDepthFirst(set, func(cm mapping.ClassMapping) {
		if found == nil && cm.ObfuscatedName() == name {
			found = cm
		}
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// RemoveClassMapping detaches the class mapping named name from wherever it
// sits in set's tree, whether top-level or nested.
func RemoveClassMapping(set *mapping.MappingSet, name string) bool {
	if set.RemoveTopLevelClass(name) {
		return true
	}
	for _, tl := range set.TopLevelClasses() {
		if removeInner(tl, name) {
			return true
		}
	}
	return false
}

func removeInner(parent mapping.ClassMapping, name string) bool {
	if parent.RemoveInnerClass(name) {
		return true
	}
	for _, ic := range parent.InnerClasses() {
		if removeInner(ic, name) {
			return true
		}
	}
	return false
}
