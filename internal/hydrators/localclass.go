package hydrators

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// LocalClassClosureBuilder is the hydration.Provider[*model.ClassRecord]
// named in spec §4.F: for each inner class whose enclosing method is
// known, it records the containing method and the constructor-synthetic
// parameters carrying captured locals. Unlike LambdaClosureBuilder, the
// containing method here lives on the (possibly concurrently hydrated)
// outer class, so writes to it are serialized the same way bridge and
// super-call linkage are.
type LocalClassClosureBuilder struct {
	locks *keyedLocks
}

// NewLocalClassClosureBuilder constructs a fresh builder.
func NewLocalClassClosureBuilder() *LocalClassClosureBuilder {
	return &LocalClassClosureBuilder{locks: newKeyedLocks()}
}

// Hydrate implements hydration.Provider[*model.ClassRecord].
func (h *LocalClassClosureBuilder) Hydrate(l *model.ClassRecord, ctx *hypocontext.Context) error {
	if l.EnclosingMethodName == "" {
		return nil
	}
	outer, ok, err := l.OuterClass()
	if err != nil {
		return err
	}
	if !ok {
		if ctx.Config().RequireFullClasspath {
			return &ClassNotFoundError{Name: l.OuterClassName}
		}
		return nil
	}
	containing, ok := outer.Method(l.EnclosingMethodName, l.EnclosingMethodDescriptor)
	if !ok {
		return nil
	}

	ctor, ok := capturingConstructor(l)
	if !ok {
		return nil
	}
	descriptor, err := ctor.MethodDescriptor()
	if err != nil {
		return err
	}

	start := 0
	if !l.StaticInner {
		start = 1 // implicit outer-this parameter
	}
	var captured []int
	for i := start; i < len(descriptor.Params); i++ {
		captured = append(captured, i)
	}

	closure := &LocalClassClosure{Containing: containing, LocalClass: l, CapturedSlots: captured}
	model.AttributeStore(l.Attributes, LocalClassClosureKey, closure)

	lock := h.locks.lock(containing)
	lock.Lock()
	defer lock.Unlock()
	existing, _ := model.AttributeGet(containing.Attributes, ContainingLocalClassClosuresKey)
	for _, e := range existing {
		if e.LocalClass == l {
			return nil
		}
	}
	model.AttributeStore(containing.Attributes, ContainingLocalClassClosuresKey, append(existing, closure))
	return nil
}

// capturingConstructor picks the declared constructor with the most
// parameters, the one carrying the full set of captured locals alongside
// the implicit outer-this.
func capturingConstructor(l *model.ClassRecord) (*model.MethodRecord, bool) {
	var best *model.MethodRecord
	bestCount := -1
	for _, m := range l.Methods() {
		if !m.IsConstructor() {
			continue
		}
		descriptor, err := m.MethodDescriptor()
		if err != nil {
			continue
		}
		if len(descriptor.Params) > bestCount {
			bestCount = len(descriptor.Params)
			best = m
		}
	}
	return best, best != nil
}
