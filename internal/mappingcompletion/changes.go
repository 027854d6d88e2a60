package mappingcompletion

import (
	"sort"

	"github.com/hypoanalysis/hypo/internal/mapping"
)

// MemberKind discriminates which member collection a MemberChange mutates.
type MemberKind int

const (
	MemberKindField MemberKind = iota
	MemberKindMethod
)

func resolveMember(set *mapping.MappingSet, target MemberReference) (mapping.ClassMapping, bool) {
	cm, ok := FindClassMapping(set, target.ClassName)
	if !ok {
		return nil, false
	}
	return cm, true
}

// RenameMappingChange overwrites the deobfuscated name of a field or
// method mapping (spec §8's worked "RenameMapping" collision example).
type RenameMappingChange struct {
	Target  MemberReference
	Kind    MemberKind
	NewName string
}

func (c *RenameMappingChange) MemberTarget() MemberReference { return c.Target }

func (c *RenameMappingChange) Apply(set *mapping.MappingSet) error {
	cm, ok := resolveMember(set, c.Target)
	if !ok {
		return &ClassMappingNotFoundError{ClassName: c.Target.ClassName}
	}
	switch c.Kind {
	case MemberKindField:
		f, ok := cm.Field(c.Target.Name, c.Target.Descriptor)
		if !ok {
			return nil
		}
		f.Deobfuscated = c.NewName
	case MemberKindMethod:
		m, ok := cm.Method(c.Target.Name, c.Target.Descriptor)
		if !ok {
			return nil
		}
		m.Deobfuscated = c.NewName
	}
	return nil
}

// Merge implements Mergeable: two renames of the same member agree iff
// they propose the same name (spec §8 property 7: equal inputs yield an
// equal-output success); anything else is a genuine semantic conflict.
func (c *RenameMappingChange) Merge(other Change) MergeResult {
	o, ok := other.(*RenameMappingChange)
	if !ok {
		return MergeResult{Reason: "not a RenameMappingChange"}
	}
	if o.NewName != c.NewName {
		return MergeResult{Reason: "conflicting target names: " + c.NewName + " vs " + o.NewName}
	}
	return MergeResult{Success: true, Merged: c}
}

// RemoveMappingChange removes a field or method mapping outright.
type RemoveMappingChange struct {
	Target MemberReference
	Kind   MemberKind
}

func (c *RemoveMappingChange) MemberTarget() MemberReference { return c.Target }

func (c *RemoveMappingChange) Apply(set *mapping.MappingSet) error {
	cm, ok := resolveMember(set, c.Target)
	if !ok {
		return nil
	}
	switch c.Kind {
	case MemberKindField:
		cm.RemoveField(c.Target.Name, c.Target.Descriptor)
	case MemberKindMethod:
		cm.RemoveMethod(c.Target.Name, c.Target.Descriptor)
	}
	return nil
}

// Merge implements Mergeable: removing the same member twice is the same
// outcome either way.
func (c *RemoveMappingChange) Merge(other Change) MergeResult {
	if _, ok := other.(*RemoveMappingChange); !ok {
		return MergeResult{Reason: "not a RemoveMappingChange"}
	}
	return MergeResult{Success: true, Merged: c}
}

// RemoveClassMappingChange detaches a top-level or inner class mapping.
type RemoveClassMappingChange struct {
	ClassName string
}

func (c *RemoveClassMappingChange) ClassTarget() string { return c.ClassName }

func (c *RemoveClassMappingChange) Apply(set *mapping.MappingSet) error {
	RemoveClassMapping(set, c.ClassName)
	return nil
}

// Merge implements Mergeable: removing the same class twice is the same
// outcome either way.
func (c *RemoveClassMappingChange) Merge(other Change) MergeResult {
	if _, ok := other.(*RemoveClassMappingChange); !ok {
		return MergeResult{Reason: "not a RemoveClassMappingChange"}
	}
	return MergeResult{Success: true, Merged: c}
}

// RemoveParameterMappingChange removes one or more parameter mappings from
// a method mapping by index (spec §8's worked merge example: indices {0}
// and {2} submitted separately merge into a single change over {0, 2}).
type RemoveParameterMappingChange struct {
	Target  MemberReference
	Indices []int
}

func (c *RemoveParameterMappingChange) MemberTarget() MemberReference { return c.Target }

func (c *RemoveParameterMappingChange) Apply(set *mapping.MappingSet) error {
	cm, ok := resolveMember(set, c.Target)
	if !ok {
		return nil
	}
	m, ok := cm.Method(c.Target.Name, c.Target.Descriptor)
	if !ok {
		return nil
	}
	for _, idx := range c.Indices {
		m.RemoveParameter(idx)
	}
	return nil
}

// Merge implements Mergeable by unioning the two index sets, deduplicated
// and sorted so repeated merges stay deterministic (spec §8 property 8).
func (c *RemoveParameterMappingChange) Merge(other Change) MergeResult {
	o, ok := other.(*RemoveParameterMappingChange)
	if !ok {
		return MergeResult{Reason: "not a RemoveParameterMappingChange"}
	}
	seen := make(map[int]bool, len(c.Indices)+len(o.Indices))
	for _, i := range c.Indices {
		seen[i] = true
	}
	for _, i := range o.Indices {
		seen[i] = true
	}
	merged := make([]int, 0, len(seen))
	for i := range seen {
		merged = append(merged, i)
	}
	sort.Ints(merged)
	return MergeResult{Success: true, Merged: &RemoveParameterMappingChange{Target: c.Target, Indices: merged}}
}

// CopyMethodMappingToTargetChange copies the deobfuscated name (and
// parameter mappings) of an already-mapped method onto another method
// reference, used by a synthetic-bridge contributor to propagate the
// real method's deobfuscated name onto its bridge (spec §4.F: "the
// non-synthetic as the real method for mapping purposes"). Source and
// Target are resolved independently so the copy can cross class
// boundaries if a future contributor needs that; the bridge contributor
// itself only ever uses same-class pairs (spec §9's restriction).
type CopyMethodMappingToTargetChange struct {
	Source MemberReference
	Target MemberReference
}

func (c *CopyMethodMappingToTargetChange) MemberTarget() MemberReference { return c.Target }

func (c *CopyMethodMappingToTargetChange) Apply(set *mapping.MappingSet) error {
	srcClass, ok := resolveMember(set, c.Source)
	if !ok {
		return &ClassMappingNotFoundError{ClassName: c.Source.ClassName}
	}
	src, ok := srcClass.Method(c.Source.Name, c.Source.Descriptor)
	if !ok {
		return nil
	}
	dstClass, ok := resolveMember(set, c.Target)
	if !ok {
		return &ClassMappingNotFoundError{ClassName: c.Target.ClassName}
	}
	dst, ok := dstClass.Method(c.Target.Name, c.Target.Descriptor)
	if !ok {
		dst = mapping.NewMethodMapping(c.Target.Name, src.Deobfuscated, c.Target.Descriptor)
		dstClass.AddMethod(dst)
	} else {
		dst.Deobfuscated = src.Deobfuscated
	}
	for _, p := range src.Parameters() {
		dst.AddParameter(mapping.NewMethodParameterMapping(p.Index, p.Deobfuscated))
	}
	return nil
}
