package hydrators

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// SuperConstructorLinker is the hydration.Provider[*model.MethodRecord]
// named in spec §4.F: for each constructor, it scans the body prefix up
// to the first explicit super(...)/this(...) invocation, records the
// called constructor and the direct pass-through argument mapping, and
// links both ends of the relation.
type SuperConstructorLinker struct {
	locks *keyedLocks
}

// NewSuperConstructorLinker constructs a fresh linker.
func NewSuperConstructorLinker() *SuperConstructorLinker {
	return &SuperConstructorLinker{locks: newKeyedLocks()}
}

// Hydrate implements hydration.Provider[*model.MethodRecord].
func (h *SuperConstructorLinker) Hydrate(ctor *model.MethodRecord, ctx *hypocontext.Context) error {
	if !ctor.IsConstructor() || ctor.Parent == nil {
		return nil
	}

	prefix, call, ok := findConstructorCallPrefix(ctor.Instructions)
	if !ok {
		return nil
	}

	targetClass, found, err := ctx.AllProviderSet().Find(call.Owner)
	if err != nil {
		return err
	}
	if !found {
		if ctx.Config().RequireFullClasspath {
			return &ClassNotFoundError{Name: call.Owner}
		}
		return nil
	}
	targetCtor, ok := targetClass.Constructor(call.Descriptor)
	if !ok {
		return nil
	}

	params, err := computePassThroughParams(prefix, targetCtor)
	if err != nil {
		return err
	}

	sc := &SuperCall{Constructor: ctor, Target: targetCtor, Params: params}
	model.AttributeStore(ctor.Attributes, SuperCallTargetKey, sc)

	lock := h.locks.lock(targetCtor)
	lock.Lock()
	defer lock.Unlock()
	sources, _ := model.AttributeGet(targetCtor.Attributes, SuperCallerSourcesKey)
	for _, s := range sources {
		if s.Constructor == ctor {
			return nil
		}
	}
	model.AttributeStore(targetCtor.Attributes, SuperCallerSourcesKey, append(sources, sc))
	return nil
}

// findConstructorCallPrefix returns the instructions preceding the first
// `<init>` invocation in ins, and that invocation itself.
func findConstructorCallPrefix(ins []model.Instruction) (prefix []model.Instruction, call model.Instruction, ok bool) {
	for i, in := range ins {
		if in.Op == model.OpInvokeSpecial && in.Name == "<init>" {
			return ins[:i], in, true
		}
	}
	return nil, model.Instruction{}, false
}

// computePassThroughParams maps each parameter i of the called
// constructor to constructor parameter j when the load of argument i is
// exactly an untransformed load of C's parameter j, with no adaptation in
// between (spec §4.F). The prefix begins with the load of the receiver, so
// argument i sits at prefix position i+1. Local variable slot 0 is the
// implicit `this`; C's
// parameter j occupies slot j+1 (the coarse slot arithmetic this repo's
// bytecode model uses throughout, ignoring wide-primitive double-width
// slots, since instruction-level decoding itself is out of scope per
// spec §1).
func computePassThroughParams(prefix []model.Instruction, target *model.MethodRecord) ([]SuperCallParameter, error) {
	targetDescriptor, err := target.MethodDescriptor()
	if err != nil {
		return nil, err
	}
	var params []SuperCallParameter
	for i := range targetDescriptor.Params {
		if i+1 >= len(prefix) {
			break
		}
		in := prefix[i+1]
		if in.Op != model.OpLoadLocal || in.Slot < 1 {
			continue
		}
		params = append(params, SuperCallParameter{ThisIndex: in.Slot - 1, SuperIndex: i})
	}
	return params, nil
}
