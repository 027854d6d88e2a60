// Package typesystem implements the VM's erasure-level descriptor grammar
// and generic-level signature grammar, a process-wide interner, and a
// composable pattern matcher over both.
package typesystem

import "fmt"

// Kind discriminates the concrete shape of a TypeRepresentable value.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindArray
	KindMethod
)

// PrimitiveName enumerates the VM's primitive descriptor characters.
type PrimitiveName int

const (
	Byte PrimitiveName = iota
	Char
	Short
	Int
	Long
	Float
	Double
	Boolean
	Void
)

var primitiveInternal = map[PrimitiveName]string{
	Byte: "B", Char: "C", Short: "S", Int: "I",
	Long: "J", Float: "F", Double: "D", Boolean: "Z", Void: "V",
}

var primitiveReadable = map[PrimitiveName]string{
	Byte: "byte", Char: "char", Short: "short", Int: "int",
	Long: "long", Float: "float", Double: "double", Boolean: "boolean", Void: "void",
}

// TypeRepresentable is the common trait shared by every descriptor and
// signature node: a stable VM-form string and a source-form string.
type TypeRepresentable interface {
	AsInternal() string
	AsReadable() string
	internKey() string
}

// Type is the erasure-level common supertype for descriptor nodes.
type Type interface {
	TypeRepresentable
	typeKind() Kind
}

// PrimitiveType represents one of the nine VM primitive descriptors.
type PrimitiveType struct {
	Name PrimitiveName
}

func (p PrimitiveType) AsInternal() string   { return primitiveInternal[p.Name] }
func (p PrimitiveType) AsReadable() string   { return primitiveReadable[p.Name] }
func (p PrimitiveType) internKey() string    { return p.AsInternal() }
func (p PrimitiveType) typeKind() Kind       { return KindPrimitive }
func (p PrimitiveType) IsWide() bool         { return p.Name == Long || p.Name == Double }
func (p PrimitiveType) IsIntegerType() bool {
	switch p.Name {
	case Byte, Char, Short, Int, Long:
		return true
	default:
		return false
	}
}
func (p PrimitiveType) IsFloating() bool { return p.Name == Float || p.Name == Double }

// ClassTypeDescriptor names a reference type by its slash-separated
// internal class name (no leading 'L', no trailing ';' in Name).
type ClassTypeDescriptor struct {
	Name string
}

func (c ClassTypeDescriptor) AsInternal() string { return "L" + c.Name + ";" }
func (c ClassTypeDescriptor) AsReadable() string { return dotted(c.Name) }
func (c ClassTypeDescriptor) internKey() string  { return c.AsInternal() }
func (c ClassTypeDescriptor) typeKind() Kind      { return KindClass }

// ArrayTypeDescriptor is a fixed dimension count over a component type
// that is itself never an array (dimensions are collapsed/stacked here).
type ArrayTypeDescriptor struct {
	Dimensions int
	Component  Type
}

func (a ArrayTypeDescriptor) AsInternal() string {
	s := ""
	for i := 0; i < a.Dimensions; i++ {
		s += "["
	}
	return s + a.Component.AsInternal()
}

func (a ArrayTypeDescriptor) AsReadable() string {
	s := a.Component.AsReadable()
	for i := 0; i < a.Dimensions; i++ {
		s += "[]"
	}
	return s
}

func (a ArrayTypeDescriptor) internKey() string { return a.AsInternal() }
func (a ArrayTypeDescriptor) typeKind() Kind      { return KindArray }

// MethodDescriptor is the erased parameter list plus return type.
type MethodDescriptor struct {
	Params []Type
	Return Type
}

func (m MethodDescriptor) AsInternal() string {
	s := "("
	for _, p := range m.Params {
		s += p.AsInternal()
	}
	s += ")" + m.Return.AsInternal()
	return s
}

func (m MethodDescriptor) AsReadable() string {
	s := "("
	for i, p := range m.Params {
		if i > 0 {
			s += ", "
		}
		s += p.AsReadable()
	}
	return s + ") " + m.Return.AsReadable()
}

func (m MethodDescriptor) internKey() string { return m.AsInternal() }
func (m MethodDescriptor) typeKind() Kind      { return KindMethod }

func dotted(slashName string) string {
	out := []byte(slashName)
	for i, b := range out {
		if b == '/' {
			out[i] = '.'
		}
	}
	return string(out)
}

// ParseFailure carries the position and reason for a malformed
// descriptor/signature string, per spec §4.A and §7.
type ParseFailure struct {
	Input    string
	Position int
	Reason   string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("type parse failure at %d in %q: %s", e.Position, e.Input, e.Reason)
}
