// Package mappingcompletion implements spec §4.G's change-planning engine:
// ChangeContributor implementations read the hydrated model plus an
// existing mapping.MappingSet and submit proposed Change values into a
// ChangeRegistry, which merges or rejects same-target collisions; a
// MappingsCompletionManager fans contributors out across classes and
// ChangeChain sequences groups of otherwise-incompatible contributors.
package mappingcompletion

import "github.com/hypoanalysis/hypo/internal/mapping"

// MemberReference names the field or method a MemberChange targets,
// mirroring spec §4.G's `MemberReference = {className, name, descriptor?}`.
type MemberReference struct {
	ClassName  string
	Name       string
	Descriptor string
}

// Change is the common shape every proposed mapping edit implements.
type Change interface {
	Apply(set *mapping.MappingSet) error
}

// MemberChange is a Change that targets one field or method.
type MemberChange interface {
	Change
	MemberTarget() MemberReference
}

// ClassChange is a Change that targets an entire class mapping.
type ClassChange interface {
	Change
	ClassTarget() string
}

// MergeResult is the outcome of Mergeable.Merge: either a successfully
// combined replacement Change, or a failure with a human-readable reason
// (spec §4.G: "Failure is recorded against the target and surfaced at
// apply time").
type MergeResult struct {
	Success bool
	Merged  Change
	Reason  string
}

// Mergeable is implemented by Change kinds whose instances can combine
// when two contributors target the same reference in one pass. Merge
// must be commutative and associative where it returns success (spec
// §4.G).
type Mergeable interface {
	Merge(other Change) MergeResult
}
