package hydrators

import "github.com/hypoanalysis/hypo/internal/model"

// LambdaClosure links a lambda body method back to the method that
// declares it and the locals it captures (spec §4.F, glossary "Closure").
type LambdaClosure struct {
	Containing      *model.MethodRecord
	Lambda          *model.MethodRecord
	InterfaceMethod *model.MethodRecord // nil if the functional-interface SAM was not resolvable
	CapturedSlots   []int
}

// LocalClassClosure links a local or anonymous class back to the method
// that declares it and the locals it captures through its constructor.
type LocalClassClosure struct {
	Containing    *model.MethodRecord
	LocalClass    *model.ClassRecord
	CapturedSlots []int
}
