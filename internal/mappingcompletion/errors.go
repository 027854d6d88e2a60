package mappingcompletion

import "fmt"

// UnsupportedChangeShapeError is returned by ChangeRegistry.Submit when a
// Change implements neither MemberChange nor ClassChange.
type UnsupportedChangeShapeError struct {
	Change Change
}

func (e *UnsupportedChangeShapeError) Error() string {
	return fmt.Sprintf("mappingcompletion: change %T targets neither a member nor a class", e.Change)
}

// UnmergeableCollisionError is returned synchronously from Submit when two
// changes land on the same target but are not the same concrete type, or
// do not both implement Mergeable (spec §4.G: "Two contributors submitting
// changes to the same target ... is a configuration error unless both
// changes implement a Mergeable contract").
type UnmergeableCollisionError struct {
	Target   string
	Existing Change
	Incoming Change
}

func (e *UnmergeableCollisionError) Error() string {
	return fmt.Sprintf("mappingcompletion: unmergeable collision at %s between %T and %T", e.Target, e.Existing, e.Incoming)
}

// MergeFailure records two same-type Mergeable changes that collided at the
// same target but whose Merge call reported failure. Unlike
// UnmergeableCollisionError this is not surfaced synchronously: spec §4.G
// says the failure "is recorded against the target and surfaced at apply
// time", so ChangeRegistry.Apply reports it instead of applying either
// change for that target.
type MergeFailure struct {
	Target   string
	Existing Change
	Incoming Change
	Reason   string
}

func (f *MergeFailure) Error() string {
	return fmt.Sprintf("mappingcompletion: merge failed at %s (%T vs %T): %s", f.Target, f.Existing, f.Incoming, f.Reason)
}

// ApplyFailure pairs a registry target with the error that kept it from
// landing in the mapping set, whether that error is a MergeFailure or a
// Change.Apply error.
type ApplyFailure struct {
	Target string
	Err    error
}

func (f *ApplyFailure) Error() string {
	return fmt.Sprintf("mappingcompletion: %s: %v", f.Target, f.Err)
}

func (f *ApplyFailure) Unwrap() error { return f.Err }

// ClassMappingNotFoundError is returned by changes that need a class
// mapping which does not exist in the target MappingSet.
type ClassMappingNotFoundError struct {
	ClassName string
}

func (e *ClassMappingNotFoundError) Error() string {
	return fmt.Sprintf("mappingcompletion: no class mapping for %s", e.ClassName)
}

// ContributionFailure wraps a failure from a ChangeContributor with the
// class it was visiting when it failed, mirroring
// hydration.ClassHydrationFailure's shape for the analogous phase.
type ContributionFailure struct {
	ClassName string
	Err       error
}

func (e *ContributionFailure) Error() string {
	return fmt.Sprintf("mappingcompletion: %s: %v", e.ClassName, e.Err)
}

func (e *ContributionFailure) Unwrap() error { return e.Err }
