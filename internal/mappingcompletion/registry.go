package mappingcompletion

import (
	"reflect"
	"sync"

	"github.com/hypoanalysis/hypo/internal/mapping"
)

// ChangeRegistry accumulates Change values submitted by contributors,
// keyed by target (spec §4.G). A second submission at a target already
// holding a change is either merged (same concrete type, both Mergeable)
// or, for anything else, rejected synchronously with
// UnmergeableCollisionError. A Mergeable collision that itself fails is
// recorded and surfaced at Apply time instead.
type ChangeRegistry struct {
	mu       sync.Mutex
	order    []string
	changes  map[string]Change
	failures map[string]*MergeFailure
}

// NewChangeRegistry returns an empty registry.
func NewChangeRegistry() *ChangeRegistry {
	return &ChangeRegistry{
		changes:  make(map[string]Change),
		failures: make(map[string]*MergeFailure),
	}
}

func targetKey(change Change) (string, bool) {
	switch c := change.(type) {
	case MemberChange:
		t := c.MemberTarget()
		return "member:" + t.ClassName + "#" + t.Name + "#" + t.Descriptor, true
	case ClassChange:
		return "class:" + c.ClassTarget(), true
	default:
		return "", false
	}
}

// Submit registers change. It returns a non-nil error only for an
// UnmergeableCollisionError (or UnsupportedChangeShapeError); a Mergeable
// collision that fails is recorded instead and reported from Apply.
func (r *ChangeRegistry) Submit(change Change) error {
	key, ok := targetKey(change)
	if !ok {
		return &UnsupportedChangeShapeError{Change: change}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, has := r.changes[key]
	if !has {
		r.order = append(r.order, key)
		r.changes[key] = change
		return nil
	}

	if reflect.TypeOf(existing) != reflect.TypeOf(change) {
		return &UnmergeableCollisionError{Target: key, Existing: existing, Incoming: change}
	}
	em, ok1 := existing.(Mergeable)
	_, ok2 := change.(Mergeable)
	if !ok1 || !ok2 {
		return &UnmergeableCollisionError{Target: key, Existing: existing, Incoming: change}
	}

	result := em.Merge(change)
	if result.Success {
		r.changes[key] = result.Merged
		delete(r.failures, key)
		return nil
	}
	r.failures[key] = &MergeFailure{Target: key, Existing: existing, Incoming: change, Reason: result.Reason}
	return nil
}

// Changes returns a snapshot of the changes currently slated to apply,
// keyed by target.
func (r *ChangeRegistry) Changes() map[string]Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Change, len(r.changes))
	for k, v := range r.changes {
		out[k] = v
	}
	return out
}

// Failures returns a snapshot of targets whose collision could not merge.
func (r *ChangeRegistry) Failures() map[string]*MergeFailure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*MergeFailure, len(r.failures))
	for k, v := range r.failures {
		out[k] = v
	}
	return out
}

// Apply applies every registered change to set in deterministic
// first-submission order, skipping (and reporting) any target whose
// collision failed to merge. The fixed order makes repeated Apply calls
// over the same registry and starting set produce byte-identical results
// (spec §8 property 8).
func (r *ChangeRegistry) Apply(set *mapping.MappingSet) []*ApplyFailure {
	r.mu.Lock()
	order := append([]string(nil), r.order...)
	changes := make(map[string]Change, len(r.changes))
	for k, v := range r.changes {
		changes[k] = v
	}
	failures := make(map[string]*MergeFailure, len(r.failures))
	for k, v := range r.failures {
		failures[k] = v
	}
	r.mu.Unlock()

	var diagnostics []*ApplyFailure
	for _, key := range order {
		if f, failed := failures[key]; failed {
			diagnostics = append(diagnostics, &ApplyFailure{Target: key, Err: f})
			continue
		}
		c, ok := changes[key]
		if !ok {
			continue
		}
		if err := c.Apply(set); err != nil {
			diagnostics = append(diagnostics, &ApplyFailure{Target: key, Err: err})
		}
	}
	return diagnostics
}
