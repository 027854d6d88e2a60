// Package model defines the decoded-class object graph: ClassRecord,
// FieldRecord and MethodRecord, plus the typed attribute store hung off
// each. Records are lazy-computed facades over already-decoded data; the
// cross-class references they carry (super, interfaces, outer, inner,
// child) are name lookups until base hydration resolves them.
package model

import (
	"sync"

	"github.com/hypoanalysis/hypo/internal/typesystem"
)

// ClassKind discriminates the VM-level declaration forms.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
	KindModule
)

// Visibility mirrors the VM's access-flag visibility tiers.
type Visibility int

const (
	Public Visibility = iota
	Protected
	PackagePrivate
	Private
)

// ClassResolver looks a class name up across whatever provider set a
// record's provider installed. It returns (nil, false) when the name is
// not reachable from any root, never an error: resolution failure is an
// ordinary outcome until hydration runs.
type ClassResolver func(name string) (*ClassRecord, bool)

var fieldDescriptorKey = NewAttributeKey[typesystem.Type]("model.fieldDescriptor")
var methodDescriptorKey = NewAttributeKey[typesystem.MethodDescriptor]("model.methodDescriptor")

// ClassRecord is the decoded, immutable-after-construction view of one
// class file. The few fields that are populated after construction
// (provider identity, the context-class flag, the resolver, child
// classes, and each method's superMethod/childMethods) are guarded by mu
// because hydration may write them from worker-pool goroutines while
// other goroutines read.
type ClassRecord struct {
	Name           string
	Kind           ClassKind
	Visibility     Visibility
	Final          bool
	StaticInner    bool
	OuterClassName string // empty if this is not an inner class
	SuperClassName string // empty only for java/lang/Object itself
	InterfaceNames []string
	InnerClassNames []string

	// EnclosingMethodName/EnclosingMethodDescriptor identify the method
	// that lexically declares this class, when it is a local or anonymous
	// class (spec §4.F local-class closure builder). Both empty for a
	// top-level or member class.
	EnclosingMethodName       string
	EnclosingMethodDescriptor string

	// BootstrapMethods is the class's bootstrap-method table, referenced
	// by OpInvokeDynamic instructions within this class's method bodies
	// (spec §4.F: lambda-closure linkage). Populated by the Decoder at
	// construction time alongside method bytecode; nil if the class has
	// no invokedynamic call sites.
	BootstrapMethods []BootstrapMethod

	fields  []*FieldRecord
	methods []*MethodRecord

	Attributes *AttributeMap

	mu               sync.RWMutex
	decorated        bool
	providerIdentity any
	contextClass     bool
	resolver         ClassResolver
	childClasses     []*ClassRecord
}

// NewClassRecord constructs an immutable class record. Fields and methods
// are back-linked to the new record as its Parent.
func NewClassRecord(
	name string,
	kind ClassKind,
	visibility Visibility,
	final, staticInner bool,
	outerClassName, superClassName string,
	interfaceNames []string,
	fields []*FieldRecord,
	methods []*MethodRecord,
	innerClassNames []string,
) *ClassRecord {
	c := &ClassRecord{
		Name:            name,
		Kind:            kind,
		Visibility:      visibility,
		Final:           final,
		StaticInner:     staticInner,
		OuterClassName:  outerClassName,
		SuperClassName:  superClassName,
		InterfaceNames:  interfaceNames,
		InnerClassNames: innerClassNames,
		fields:          fields,
		methods:         methods,
		Attributes:      NewAttributeMap(),
	}
	for _, f := range fields {
		f.Parent = c
	}
	for _, m := range methods {
		m.Parent = c
	}
	return c
}

// Decorate installs the provider identity, the name resolver, and the
// context-class flag. A provider calls this exactly once per record,
// immediately after decode, before the record is handed to any caller
// (spec §4.C: "retrieving a record before the decorator is installed
// fails with a precondition error").
func (c *ClassRecord) Decorate(providerIdentity any, resolver ClassResolver, contextClass bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providerIdentity = providerIdentity
	c.resolver = resolver
	c.contextClass = contextClass
	c.decorated = true
}

// IsDecorated reports whether Decorate has run.
func (c *ClassRecord) IsDecorated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.decorated
}

// IsContextClass reports the classpath-only flag set at decoration time.
func (c *ClassRecord) IsContextClass() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contextClass
}

// ProviderIdentity returns the opaque identity of the owning provider, or
// nil if not yet decorated.
func (c *ClassRecord) ProviderIdentity() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.providerIdentity
}

// Equal implements the class-level identity rule: same provider, same
// name (spec §4.B).
func (c *ClassRecord) Equal(other *ClassRecord) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c == other {
		return true
	}
	return c.ProviderIdentity() == other.ProviderIdentity() && c.Name == other.Name
}

func (c *ClassRecord) resolve(name string) (*ClassRecord, bool, error) {
	c.mu.RLock()
	decorated, resolver := c.decorated, c.resolver
	c.mu.RUnlock()
	if !decorated {
		return nil, false, ErrNotDecorated
	}
	if name == "" {
		return nil, false, nil
	}
	rec, ok := resolver(name)
	return rec, ok, nil
}

// SuperClass resolves SuperClassName through the installed resolver.
func (c *ClassRecord) SuperClass() (*ClassRecord, bool, error) {
	return c.resolve(c.SuperClassName)
}

// OuterClass resolves OuterClassName through the installed resolver.
func (c *ClassRecord) OuterClass() (*ClassRecord, bool, error) {
	return c.resolve(c.OuterClassName)
}

// Interfaces resolves every entry in InterfaceNames, in declaration
// order. A name that fails to resolve is simply omitted; callers that
// need to distinguish "no interfaces" from "unresolved interface" should
// compare len(result) against len(c.InterfaceNames).
func (c *ClassRecord) Interfaces() ([]*ClassRecord, error) {
	out := make([]*ClassRecord, 0, len(c.InterfaceNames))
	for _, name := range c.InterfaceNames {
		rec, ok, err := c.resolve(name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// InnerClasses resolves every entry in InnerClassNames.
func (c *ClassRecord) InnerClasses() ([]*ClassRecord, error) {
	out := make([]*ClassRecord, 0, len(c.InnerClassNames))
	for _, name := range c.InnerClassNames {
		rec, ok, err := c.resolve(name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// AddChildClass records rec as a direct subclass/implementor of c. Only
// the base hydrator calls this, during phase 1 hierarchy hydration.
func (c *ClassRecord) AddChildClass(rec *ClassRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.childClasses = append(c.childClasses, rec)
}

// ChildClasses returns the classes recorded via AddChildClass, restricted
// by construction to whatever provider set the base hydrator walked
// (spec §3: "restricted to classes present in the core provider set").
func (c *ClassRecord) ChildClasses() []*ClassRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*ClassRecord, len(c.childClasses))
	copy(out, c.childClasses)
	return out
}

// Fields returns the declared fields in decode order.
func (c *ClassRecord) Fields() []*FieldRecord { return c.fields }

// Methods returns the declared methods (constructors included) in decode
// order.
func (c *ClassRecord) Methods() []*MethodRecord { return c.methods }

// Field looks up a declared field by name and erased type descriptor.
func (c *ClassRecord) Field(name string, descriptor string) (*FieldRecord, bool) {
	for _, f := range c.fields {
		if f.Name == name && f.RawDescriptor == descriptor {
			return f, true
		}
	}
	return nil, false
}

// Method looks up a declared (non-constructor or constructor alike)
// method by name and erased method descriptor.
func (c *ClassRecord) Method(name string, descriptor string) (*MethodRecord, bool) {
	for _, m := range c.methods {
		if m.Name == name && m.RawDescriptor == descriptor {
			return m, true
		}
	}
	return nil, false
}

// Constructor looks up the `<init>` method matching descriptor.
func (c *ClassRecord) Constructor(descriptor string) (*MethodRecord, bool) {
	return c.Method("<init>", descriptor)
}

// LiveRange is the bytecode-offset span over which a local variable slot
// holds a given value.
type LiveRange struct {
	Start int
	End   int
}

// LocalVariableEntry is one row of a method's local-variable table. Name
// is nil when the decoder could not recover a debug name for the slot.
type LocalVariableEntry struct {
	Slot  int
	Name  *string
	Type  typesystem.Type
	Range LiveRange
}

// FieldRecord is a single declared field.
type FieldRecord struct {
	Parent        *ClassRecord
	Name          string
	RawDescriptor string
	Visibility    Visibility
	Static        bool
	Final         bool
	Synthetic     bool

	Attributes *AttributeMap
}

// NewFieldRecord constructs a field record detached from any class; its
// Parent is set when passed to NewClassRecord.
func NewFieldRecord(name, descriptor string, visibility Visibility, static, final, synthetic bool) *FieldRecord {
	return &FieldRecord{
		Name:          name,
		RawDescriptor: descriptor,
		Visibility:    visibility,
		Static:        static,
		Final:         final,
		Synthetic:     synthetic,
		Attributes:    NewAttributeMap(),
	}
}

// Descriptor parses and caches RawDescriptor on first access.
func (f *FieldRecord) Descriptor() (typesystem.Type, error) {
	var parseErr error
	ty := AttributeComputeIfAbsent(f.Attributes, fieldDescriptorKey, func() typesystem.Type {
		t, err := typesystem.ParseDescriptor(f.RawDescriptor)
		if err != nil {
			parseErr = err
			return nil
		}
		return t
	})
	if ty == nil && parseErr != nil {
		return nil, parseErr
	}
	return ty, nil
}

// Equal implements the member-level identity rule: same parent class
// identity, same name, same descriptor (spec §4.B).
func (f *FieldRecord) Equal(other *FieldRecord) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f == other {
		return true
	}
	return f.Parent.Equal(other.Parent) && f.Name == other.Name && f.RawDescriptor == other.RawDescriptor
}

// MethodRecord is a single declared method, including constructors
// (Name == "<init>").
type MethodRecord struct {
	Parent        *ClassRecord
	Name          string
	RawDescriptor string
	Visibility    Visibility
	Abstract      bool
	Final         bool
	Synthetic     bool
	Bridge        bool
	Native        bool
	Static        bool
	LocalVars     []LocalVariableEntry

	// Instructions is the method body's decoded bytecode, reduced to the
	// shape defined in bytecode.go. Populated by the Decoder; nil for
	// abstract and native methods, which have no body to scan.
	Instructions []Instruction

	Attributes *AttributeMap

	mu           sync.RWMutex
	superMethod  *MethodRecord
	childMethods []*MethodRecord
}

// NewMethodRecord constructs a method record detached from any class; its
// Parent is set when passed to NewClassRecord.
func NewMethodRecord(
	name, descriptor string,
	visibility Visibility,
	abstract, final, synthetic, bridge, native, static bool,
	localVars []LocalVariableEntry,
) *MethodRecord {
	return &MethodRecord{
		Name:          name,
		RawDescriptor: descriptor,
		Visibility:    visibility,
		Abstract:      abstract,
		Final:         final,
		Synthetic:     synthetic,
		Bridge:        bridge,
		Native:        native,
		Static:        static,
		LocalVars:     localVars,
		Attributes:    NewAttributeMap(),
	}
}

// IsConstructor reports whether this record is `<init>`.
func (m *MethodRecord) IsConstructor() bool { return m.Name == "<init>" }

// MethodDescriptor parses and caches RawDescriptor on first access.
func (m *MethodRecord) MethodDescriptor() (typesystem.MethodDescriptor, error) {
	var parseErr error
	md := AttributeComputeIfAbsent(m.Attributes, methodDescriptorKey, func() typesystem.MethodDescriptor {
		d, err := typesystem.ParseMethodDescriptor(m.RawDescriptor)
		if err != nil {
			parseErr = err
			return typesystem.MethodDescriptor{}
		}
		return d
	})
	if parseErr != nil {
		return typesystem.MethodDescriptor{}, parseErr
	}
	return md, nil
}

// Equal implements the member-level identity rule.
func (m *MethodRecord) Equal(other *MethodRecord) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m == other {
		return true
	}
	return m.Parent.Equal(other.Parent) && m.Name == other.Name && m.RawDescriptor == other.RawDescriptor
}

// SetSuperMethod records m's resolved override target. Only the base
// hydrator calls this.
func (m *MethodRecord) SetSuperMethod(target *MethodRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.superMethod = target
}

// SuperMethod returns the method m overrides, if any.
func (m *MethodRecord) SuperMethod() (*MethodRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.superMethod, m.superMethod != nil
}

// AddChildMethod records that child overrides m. Only the base hydrator
// calls this, and only for children present in the core provider set
// (spec §3 invariant on childMethods).
func (m *MethodRecord) AddChildMethod(child *MethodRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.childMethods = append(m.childMethods, child)
}

// ChildMethods returns the methods recorded via AddChildMethod.
func (m *MethodRecord) ChildMethods() []*MethodRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MethodRecord, len(m.childMethods))
	copy(out, m.childMethods)
	return out
}

// CanBeOverridden reports whether m is eligible to participate in the
// superMethod/childMethods relation at all: not static, not private, not
// a constructor (spec §3 invariant (c)).
func (m *MethodRecord) CanBeOverridden() bool {
	return !m.Static && m.Visibility != Private && !m.IsConstructor()
}
