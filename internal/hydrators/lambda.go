package hydrators

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// LambdaClosureBuilder is the hydration.Provider[*model.ClassRecord]
// named in spec §4.F: for each class, for each bootstrap invocation whose
// target is a synthetic lambda body method declared in the same class, it
// records the containing method, the captured local slots, and the
// functional-interface SAM when resolvable. It targets the class level
// because both the bootstrap call site and the lambda body it names
// always live in the class under hydration, so no cross-class locking is
// needed for the writes it makes.
type LambdaClosureBuilder struct{}

// NewLambdaClosureBuilder constructs a fresh builder.
func NewLambdaClosureBuilder() *LambdaClosureBuilder { return &LambdaClosureBuilder{} }

// Hydrate implements hydration.Provider[*model.ClassRecord].
func (h *LambdaClosureBuilder) Hydrate(c *model.ClassRecord, ctx *hypocontext.Context) error {
	for _, containing := range c.Methods() {
		ins := containing.Instructions
		for i, in := range ins {
			if in.Op != model.OpInvokeDynamic {
				continue
			}
			if in.BootstrapIndex < 0 || in.BootstrapIndex >= len(c.BootstrapMethods) {
				continue
			}
			bootstrap := c.BootstrapMethods[in.BootstrapIndex]

			lambda, ok := c.Method(bootstrap.MethodName, bootstrap.MethodDescriptor)
			if !ok || !lambda.Synthetic || lambda == containing {
				continue
			}

			var captured []int
			for j := i - 1; j >= 0 && ins[j].Op == model.OpLoadLocal; j-- {
				captured = append([]int{ins[j].Slot}, captured...)
			}

			iface := resolveSamMethod(ctx, bootstrap)

			closure := &LambdaClosure{
				Containing:      containing,
				Lambda:          lambda,
				InterfaceMethod: iface,
				CapturedSlots:   captured,
			}
			model.AttributeStore(lambda.Attributes, LambdaClosureKey, closure)

			existing, _ := model.AttributeGet(containing.Attributes, ContainingLambdaClosuresKey)
			model.AttributeStore(containing.Attributes, ContainingLambdaClosuresKey, append(existing, closure))
		}
	}
	return nil
}

func resolveSamMethod(ctx *hypocontext.Context, bootstrap model.BootstrapMethod) *model.MethodRecord {
	if bootstrap.SamInterface == "" || bootstrap.SamMethod == "" {
		return nil
	}
	iface, ok, err := ctx.AllProviderSet().Find(bootstrap.SamInterface)
	if err != nil || !ok {
		return nil
	}
	for _, m := range iface.Methods() {
		if m.Name == bootstrap.SamMethod {
			return m
		}
	}
	return nil
}
