package typesystem

// PatternContext threads named capture bindings through a pattern
// evaluation so that a later predicate in a composed pattern can
// backreference an earlier capture (spec §4.A: "captures (bind a type to
// a named slot in the context for later backreference)"). This is the
// concrete shape SPEC_FULL.md's supplemented feature #2 asks for.
type PatternContext struct {
	bindings map[string]TypeRepresentable
}

// NewPatternContext returns an empty context ready for a fresh pattern
// evaluation.
func NewPatternContext() *PatternContext {
	return &PatternContext{bindings: make(map[string]TypeRepresentable)}
}

// Bind records v under name, overwriting any prior binding.
func (c *PatternContext) Bind(name string, v TypeRepresentable) {
	c.bindings[name] = v
}

// Lookup returns the value bound to name, if any.
func (c *PatternContext) Lookup(name string) (TypeRepresentable, bool) {
	v, ok := c.bindings[name]
	return v, ok
}

// Pattern is a total predicate over a type value plus a shared context.
// Evaluating any Pattern on any TypeRepresentable must never panic (spec
// §4.A: "Patterns must be total").
type Pattern func(v TypeRepresentable, ctx *PatternContext) bool

// Matches reports whether p holds for v, using a fresh context.
func (p Pattern) Matches(v TypeRepresentable) bool {
	return p(v, NewPatternContext())
}

// --- combinators ---

// And succeeds when every sub-pattern succeeds, short-circuiting on the
// first failure; it is total because each operand is assumed total.
func And(patterns ...Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		for _, p := range patterns {
			if !p(v, ctx) {
				return false
			}
		}
		return true
	}
}

// Or succeeds when any sub-pattern succeeds.
func Or(patterns ...Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		for _, p := range patterns {
			if p(v, ctx) {
				return true
			}
		}
		return false
	}
}

// Not inverts a pattern.
func Not(p Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		return !p(v, ctx)
	}
}

// Capture evaluates p and, if it succeeds, binds v under name before
// returning true.
func Capture(name string, p Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		if p(v, ctx) {
			ctx.Bind(name, v)
			return true
		}
		return false
	}
}

// --- primitive-family predicates ---

func asPrimitive(v TypeRepresentable) (PrimitiveType, bool) {
	p, ok := v.(PrimitiveType)
	return p, ok
}

// IsPrimitive matches any of the nine primitive descriptors.
func IsPrimitive(v TypeRepresentable, _ *PatternContext) bool {
	_, ok := asPrimitive(v)
	return ok
}

// IsIntegerType matches byte/char/short/int/long.
func IsIntegerType(v TypeRepresentable, _ *PatternContext) bool {
	p, ok := asPrimitive(v)
	return ok && p.IsIntegerType()
}

// IsFloating matches float/double.
func IsFloating(v TypeRepresentable, _ *PatternContext) bool {
	p, ok := asPrimitive(v)
	return ok && p.IsFloating()
}

// IsWide matches long/double, the two category-2 primitives.
func IsWide(v TypeRepresentable, _ *PatternContext) bool {
	p, ok := asPrimitive(v)
	return ok && p.IsWide()
}

// IsReturnable matches any descriptor or signature except the Void
// primitive — spec §4.A: "is-returnable (descriptor or signature
// excluding Void)".
func IsReturnable(v TypeRepresentable, _ *PatternContext) bool {
	if p, ok := asPrimitive(v); ok {
		return p.Name != Void
	}
	return v != nil
}

// IsAssignable matches any descriptor or signature except Void and
// MethodDescriptor/MethodSignature — spec §4.A: "is-assignable (excluding
// Void and methods)".
func IsAssignable(v TypeRepresentable, _ *PatternContext) bool {
	switch t := v.(type) {
	case PrimitiveType:
		return t.Name != Void
	case MethodDescriptor, MethodSignature:
		return false
	default:
		return v != nil
	}
}

// IsClass matches ClassTypeDescriptor or ClassTypeSignature.
func IsClass(v TypeRepresentable, _ *PatternContext) bool {
	switch v.(type) {
	case ClassTypeDescriptor, *ClassTypeSignature, ClassTypeSignature:
		return true
	default:
		return false
	}
}

func className(v TypeRepresentable) (string, bool) {
	switch t := v.(type) {
	case ClassTypeDescriptor:
		return t.Name, true
	case *ClassTypeSignature:
		return t.Name, true
	case ClassTypeSignature:
		return t.Name, true
	default:
		return "", false
	}
}

// IsClassNamed matches a class type whose internal name equals name
// exactly.
func IsClassNamed(name string) Pattern {
	return func(v TypeRepresentable, _ *PatternContext) bool {
		n, ok := className(v)
		return ok && n == name
	}
}

// IsClassNamedMatching matches a class type whose internal name satisfies
// pred, the predicate form of IsClassNamed (spec §4.A:
// "is-class-named(name|predicate)").
func IsClassNamedMatching(pred func(string) bool) Pattern {
	return func(v TypeRepresentable, _ *PatternContext) bool {
		n, ok := className(v)
		return ok && pred(n)
	}
}

func asArrayDimComponent(v TypeRepresentable) (dims int, component TypeRepresentable, ok bool) {
	switch t := v.(type) {
	case ArrayTypeDescriptor:
		return t.Dimensions, t.Component, true
	case ArrayTypeSignature:
		return t.Dimensions, t.Component, true
	default:
		return 0, nil, false
	}
}

// IsArray matches an array type. If dim >= 0 the dimension count must
// match exactly; if component is non-nil it must match the element type.
func IsArray(dim int, component Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		d, c, ok := asArrayDimComponent(v)
		if !ok {
			return false
		}
		if dim >= 0 && d != dim {
			return false
		}
		if component != nil && !component(c, ctx) {
			return false
		}
		return true
	}
}

func typeArguments(v TypeRepresentable) ([]TypeArgument, bool) {
	switch t := v.(type) {
	case *ClassTypeSignature:
		return t.TypeArguments, true
	case ClassTypeSignature:
		return t.TypeArguments, true
	default:
		return nil, false
	}
}

// HasTypeArguments matches a ClassTypeSignature with exactly n type
// arguments.
func HasTypeArguments(n int) Pattern {
	return func(v TypeRepresentable, _ *PatternContext) bool {
		args, ok := typeArguments(v)
		return ok && len(args) == n
	}
}

// OwnerIs matches a ClassTypeSignature whose OwnerSignature matches owner.
func OwnerIs(owner Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		cts, ok := v.(*ClassTypeSignature)
		if !ok {
			if val, ok2 := v.(ClassTypeSignature); ok2 {
				cts = &val
			} else {
				return false
			}
		}
		if cts.OwnerSignature == nil {
			return false
		}
		return owner(cts.OwnerSignature, ctx)
	}
}

// HasName matches any named node (class, type variable, type parameter)
// whose name satisfies pred.
func HasName(pred func(string) bool) Pattern {
	return func(v TypeRepresentable, _ *PatternContext) bool {
		switch t := v.(type) {
		case ClassTypeDescriptor:
			return pred(t.Name)
		case *ClassTypeSignature:
			return pred(t.Name)
		case ClassTypeSignature:
			return pred(t.Name)
		case TypeVariable:
			return pred(t.Name)
		case UnboundTypeVariable:
			return pred(t.Name)
		case TypeParameter:
			return pred(t.Name)
		default:
			return false
		}
	}
}

// HasClassBound matches a TypeParameter whose ClassBound matches bound.
func HasClassBound(bound Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		tp, ok := v.(TypeParameter)
		if !ok || tp.ClassBound == nil {
			return false
		}
		return bound(tp.ClassBound, ctx)
	}
}

// HasInterfaceBounds matches a TypeParameter whose InterfaceBounds
// pairwise match bounds, in order and count.
func HasInterfaceBounds(bounds ...Pattern) Pattern {
	return func(v TypeRepresentable, ctx *PatternContext) bool {
		tp, ok := v.(TypeParameter)
		if !ok || len(tp.InterfaceBounds) != len(bounds) {
			return false
		}
		for i, b := range bounds {
			if !b(tp.InterfaceBounds[i], ctx) {
				return false
			}
		}
		return true
	}
}
