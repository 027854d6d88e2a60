package hydrators

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// SyntheticBridgeLinker is the hydration.Provider[*model.MethodRecord]
// named in spec §4.F: for each synthetic method whose body is pure
// argument adaptation forwarded to a non-synthetic method in the same
// class with a matching call, it records the forward and back links.
// Bridges that would cross into a super-class are intentionally not
// recognized (spec §9 open question: "the source only handles same-class
// bridges; keep that restriction").
type SyntheticBridgeLinker struct {
	locks *keyedLocks
}

// NewSyntheticBridgeLinker constructs a fresh linker.
func NewSyntheticBridgeLinker() *SyntheticBridgeLinker {
	return &SyntheticBridgeLinker{locks: newKeyedLocks()}
}

// Hydrate implements hydration.Provider[*model.MethodRecord].
func (h *SyntheticBridgeLinker) Hydrate(m *model.MethodRecord, _ *hypocontext.Context) error {
	if !m.Synthetic || m.Parent == nil {
		return nil
	}
	target, ok := findBridgeTarget(m)
	if !ok {
		return nil
	}
	model.AttributeStore(m.Attributes, SyntheticTargetKey, target)

	lock := h.locks.lock(target)
	lock.Lock()
	defer lock.Unlock()
	sources, _ := model.AttributeGet(target.Attributes, SyntheticSourceKey)
	for _, s := range sources {
		if s == m {
			return nil
		}
	}
	model.AttributeStore(target.Attributes, SyntheticSourceKey, append(sources, m))
	return nil
}

// findBridgeTarget recognizes "argument adaptation, then a call to a
// non-synthetic method in the same class, then return, and nothing else"
// (spec §4.F). A leading run of loads/adaptations is permitted before the
// single call, and a run of adaptations of the returned value between the
// call and the return; anything else after the call disqualifies the
// method.
func findBridgeTarget(m *model.MethodRecord) (*model.MethodRecord, bool) {
	ins := m.Instructions
	i := 0
	for i < len(ins) && (ins[i].Op == model.OpLoadLocal || ins[i].Op == model.OpAdapt) {
		i++
	}
	if i >= len(ins) || !isInvoke(ins[i].Op) {
		return nil, false
	}
	call := ins[i]
	if call.Owner != m.Parent.Name {
		return nil, false
	}
	i++
	for i < len(ins) && ins[i].Op == model.OpAdapt {
		i++
	}
	if i >= len(ins) || ins[i].Op != model.OpReturn {
		return nil, false
	}
	i++
	if i != len(ins) {
		return nil, false
	}

	target, ok := m.Parent.Method(call.Name, call.Descriptor)
	if !ok || target.Synthetic || target == m {
		return nil, false
	}
	return target, true
}

func isInvoke(op model.Opcode) bool {
	switch op {
	case model.OpInvokeVirtual, model.OpInvokeSpecial, model.OpInvokeStatic, model.OpInvokeInterface:
		return true
	default:
		return false
	}
}
