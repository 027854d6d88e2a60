package mappingcompletion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/hypoanalysis/hypo/internal/mapping"
)

// renderMappingSet produces a deterministic, sorted textual rendering of
// set's tree for diffing purposes only; it is not a persisted format (spec
// §1/§6: mapping-set file I/O is out of scope). One line per class, field,
// method and parameter mapping, class entries sorted by obfuscated name so
// two renders of the same logical content always compare equal regardless
// of map iteration order.
func renderMappingSet(set *mapping.MappingSet) string {
	var lines []string
	var walk func(cm mapping.ClassMapping, depth int)
	walk = func(cm mapping.ClassMapping, depth int) {
		indent := strings.Repeat("  ", depth)
		lines = append(lines, fmt.Sprintf("%sclass %s -> %s", indent, cm.ObfuscatedName(), cm.DeobfuscatedName()))

		fields := cm.Fields()
		sort.Slice(fields, func(i, j int) bool { return fields[i].Obfuscated < fields[j].Obfuscated })
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("%s  field %s %s -> %s", indent, f.ObfuscatedDescriptor, f.Obfuscated, f.Deobfuscated))
		}

		methods := cm.Methods()
		sort.Slice(methods, func(i, j int) bool {
			if methods[i].Obfuscated != methods[j].Obfuscated {
				return methods[i].Obfuscated < methods[j].Obfuscated
			}
			return methods[i].ObfuscatedDescriptor < methods[j].ObfuscatedDescriptor
		})
		for _, mm := range methods {
			lines = append(lines, fmt.Sprintf("%s  method %s%s -> %s", indent, mm.Obfuscated, mm.ObfuscatedDescriptor, mm.Deobfuscated))
			params := mm.Parameters()
			sort.Slice(params, func(i, j int) bool { return params[i].Index < params[j].Index })
			for _, p := range params {
				lines = append(lines, fmt.Sprintf("%s    param %d -> %s", indent, p.Index, p.Deobfuscated))
			}
		}

		inner := cm.InnerClasses()
		sort.Slice(inner, func(i, j int) bool { return inner[i].ObfuscatedName() < inner[j].ObfuscatedName() })
		for _, ic := range inner {
			walk(ic, depth+1)
		}
	}

	top := set.TopLevelClasses()
	sorted := append([]*mapping.TopLevelClassMapping(nil), top...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ObfuscatedName() < sorted[j].ObfuscatedName() })
	for _, tl := range sorted {
		walk(tl, 0)
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderApplyDiff runs registry.Apply(set) and returns a unified diff of
// set's rendering before and after, alongside the per-target diagnostics
// (spec domain stack: go-difflib, the way the teacher's manipulator/
// pipeline flows render a unified diff of a transformation before
// committing it — here repointed at a structural mapping-tree diff
// instead of source text).
func RenderApplyDiff(registry *ChangeRegistry, set *mapping.MappingSet) (string, []*ApplyFailure) {
	before := renderMappingSet(set)
	failures := registry.Apply(set)
	after := renderMappingSet(set)

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "mappings (before)",
		ToFile:   "mappings (after)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err), failures
	}
	return text, failures
}
