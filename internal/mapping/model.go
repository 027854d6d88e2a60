// Package mapping models the in-memory name-mapping tree spec §4.G
// describes: a MappingSet of TopLevelClassMapping entries, each carrying
// FieldMapping/MethodMapping members (MethodMapping further carrying
// MethodParameterMapping by index) and any number of nested
// InnerClassMapping entries. Spec §9 explicitly asks for this to be an
// in-repository structure with explicit mutation APIs rather than the
// reflective field-poking the original system used against an external
// mappings library — every mutation here goes through a named method.
package mapping

import "sync"

// ClassMapping is the capability shared by TopLevelClassMapping and
// InnerClassMapping: obfuscated/deobfuscated name pair plus field and
// method members. ChangeContributor and the completion engine operate
// through this interface so the same dispatch code handles both
// top-level and nested class mappings during the depth-first walk.
type ClassMapping interface {
	ObfuscatedName() string
	DeobfuscatedName() string
	SetDeobfuscatedName(name string)

	Fields() []*FieldMapping
	Field(obfName, obfDescriptor string) (*FieldMapping, bool)
	AddField(f *FieldMapping)
	RemoveField(obfName, obfDescriptor string) bool

	Methods() []*MethodMapping
	Method(obfName, obfDescriptor string) (*MethodMapping, bool)
	AddMethod(m *MethodMapping)
	RemoveMethod(obfName, obfDescriptor string) bool

	InnerClasses() []*InnerClassMapping
	InnerClass(obfName string) (*InnerClassMapping, bool)
	AddInnerClass(c *InnerClassMapping)
	RemoveInnerClass(obfName string) bool
}

// classMappingCore is the shared body both class-mapping kinds embed; it
// implements every method of ClassMapping so embedding it is sufficient
// to satisfy the interface.
type classMappingCore struct {
	mu           sync.RWMutex
	obfuscated   string
	deobfuscated string
	fields       []*FieldMapping
	methods      []*MethodMapping
	inner        []*InnerClassMapping
}

func newClassMappingCore(obfuscated, deobfuscated string) classMappingCore {
	return classMappingCore{obfuscated: obfuscated, deobfuscated: deobfuscated}
}

func (c *classMappingCore) ObfuscatedName() string { return c.obfuscated }

func (c *classMappingCore) DeobfuscatedName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deobfuscated
}

func (c *classMappingCore) SetDeobfuscatedName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deobfuscated = name
}

func (c *classMappingCore) Fields() []*FieldMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FieldMapping, len(c.fields))
	copy(out, c.fields)
	return out
}

func (c *classMappingCore) Field(obfName, obfDescriptor string) (*FieldMapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.fields {
		if f.Obfuscated == obfName && (obfDescriptor == "" || f.ObfuscatedDescriptor == obfDescriptor) {
			return f, true
		}
	}
	return nil, false
}

func (c *classMappingCore) AddField(f *FieldMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = append(c.fields, f)
}

func (c *classMappingCore) RemoveField(obfName, obfDescriptor string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.fields {
		if f.Obfuscated == obfName && (obfDescriptor == "" || f.ObfuscatedDescriptor == obfDescriptor) {
			c.fields = append(c.fields[:i], c.fields[i+1:]...)
			return true
		}
	}
	return false
}

func (c *classMappingCore) Methods() []*MethodMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*MethodMapping, len(c.methods))
	copy(out, c.methods)
	return out
}

func (c *classMappingCore) Method(obfName, obfDescriptor string) (*MethodMapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.methods {
		if m.Obfuscated == obfName && m.ObfuscatedDescriptor == obfDescriptor {
			return m, true
		}
	}
	return nil, false
}

func (c *classMappingCore) AddMethod(m *MethodMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods = append(c.methods, m)
}

func (c *classMappingCore) RemoveMethod(obfName, obfDescriptor string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.methods {
		if m.Obfuscated == obfName && m.ObfuscatedDescriptor == obfDescriptor {
			c.methods = append(c.methods[:i], c.methods[i+1:]...)
			return true
		}
	}
	return false
}

func (c *classMappingCore) InnerClasses() []*InnerClassMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*InnerClassMapping, len(c.inner))
	copy(out, c.inner)
	return out
}

func (c *classMappingCore) InnerClass(obfName string) (*InnerClassMapping, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, i := range c.inner {
		if i.ObfuscatedName() == obfName {
			return i, true
		}
	}
	return nil, false
}

func (c *classMappingCore) AddInnerClass(ic *InnerClassMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner = append(c.inner, ic)
}

func (c *classMappingCore) RemoveInnerClass(obfName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ic := range c.inner {
		if ic.ObfuscatedName() == obfName {
			c.inner = append(c.inner[:i], c.inner[i+1:]...)
			return true
		}
	}
	return false
}

// TopLevelClassMapping is a class mapping hung directly off a MappingSet.
type TopLevelClassMapping struct {
	classMappingCore
}

// NewTopLevelClassMapping constructs a mapping with no members yet.
func NewTopLevelClassMapping(obfuscated, deobfuscated string) *TopLevelClassMapping {
	return &TopLevelClassMapping{classMappingCore: newClassMappingCore(obfuscated, deobfuscated)}
}

// InnerClassMapping is a class mapping nested under a top-level or another
// inner class mapping. Obfuscated names for inner classes are conventionally
// the full binary name (outer$Inner), matching ClassRecord.Name.
type InnerClassMapping struct {
	classMappingCore
}

// NewInnerClassMapping constructs a mapping with no members yet.
func NewInnerClassMapping(obfuscated, deobfuscated string) *InnerClassMapping {
	return &InnerClassMapping{classMappingCore: newClassMappingCore(obfuscated, deobfuscated)}
}

// FieldMapping associates an obfuscated field name (and, when known, its
// obfuscated descriptor, needed to disambiguate overloaded field names
// across languages that allow them) with a deobfuscated name.
type FieldMapping struct {
	Obfuscated           string
	Deobfuscated         string
	ObfuscatedDescriptor string // optional; empty means "match by name alone"
}

// NewFieldMapping constructs a field mapping.
func NewFieldMapping(obfuscated, deobfuscated, obfuscatedDescriptor string) *FieldMapping {
	return &FieldMapping{Obfuscated: obfuscated, Deobfuscated: deobfuscated, ObfuscatedDescriptor: obfuscatedDescriptor}
}

// MethodMapping associates an obfuscated method name+descriptor with a
// deobfuscated name, plus any per-parameter renames.
type MethodMapping struct {
	Obfuscated           string
	Deobfuscated         string
	ObfuscatedDescriptor string
	ObfuscatedSignature  string // optional generic signature, empty if unknown

	mu         sync.RWMutex
	parameters []*MethodParameterMapping
}

// NewMethodMapping constructs a method mapping with no parameter mappings.
func NewMethodMapping(obfuscated, deobfuscated, obfuscatedDescriptor string) *MethodMapping {
	return &MethodMapping{Obfuscated: obfuscated, Deobfuscated: deobfuscated, ObfuscatedDescriptor: obfuscatedDescriptor}
}

// Parameters returns the parameter mappings in index order.
func (m *MethodMapping) Parameters() []*MethodParameterMapping {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MethodParameterMapping, len(m.parameters))
	copy(out, m.parameters)
	return out
}

// Parameter looks a parameter mapping up by index.
func (m *MethodMapping) Parameter(index int) (*MethodParameterMapping, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.parameters {
		if p.Index == index {
			return p, true
		}
	}
	return nil, false
}

// AddParameter records a parameter mapping, replacing any existing entry
// at the same index.
func (m *MethodMapping) AddParameter(p *MethodParameterMapping) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.parameters {
		if existing.Index == p.Index {
			m.parameters[i] = p
			return
		}
	}
	m.parameters = append(m.parameters, p)
}

// RemoveParameter removes the parameter mapping at index, if any.
func (m *MethodMapping) RemoveParameter(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.parameters {
		if p.Index == index {
			m.parameters = append(m.parameters[:i], m.parameters[i+1:]...)
			return true
		}
	}
	return false
}

// MethodParameterMapping renames one parameter of a MethodMapping by
// index.
type MethodParameterMapping struct {
	Index        int
	Deobfuscated string
}

// NewMethodParameterMapping constructs a parameter mapping.
func NewMethodParameterMapping(index int, deobfuscated string) *MethodParameterMapping {
	return &MethodParameterMapping{Index: index, Deobfuscated: deobfuscated}
}

// MappingSet is the root of the mapping tree: an ordered collection of
// TopLevelClassMapping entries keyed by obfuscated name. Iteration order
// is declaration order, which MappingsCompletionManager relies on for the
// determinism testable property (spec §8 property 8).
type MappingSet struct {
	mu     sync.RWMutex
	byName map[string]*TopLevelClassMapping
	order  []string
}

// NewMappingSet returns an empty set.
func NewMappingSet() *MappingSet {
	return &MappingSet{byName: make(map[string]*TopLevelClassMapping)}
}

// TopLevelClass looks a class mapping up by obfuscated name.
func (s *MappingSet) TopLevelClass(obfName string) (*TopLevelClassMapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byName[obfName]
	return c, ok
}

// AddTopLevelClass registers c, appending it to iteration order if new.
func (s *MappingSet) AddTopLevelClass(c *TopLevelClassMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[c.ObfuscatedName()]; !exists {
		s.order = append(s.order, c.ObfuscatedName())
	}
	s.byName[c.ObfuscatedName()] = c
}

// RemoveTopLevelClass removes the class mapping for obfName, if any.
func (s *MappingSet) RemoveTopLevelClass(obfName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[obfName]; !ok {
		return false
	}
	delete(s.byName, obfName)
	for i, name := range s.order {
		if name == obfName {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// TopLevelClasses returns every registered class mapping in declaration
// order.
func (s *MappingSet) TopLevelClasses() []*TopLevelClassMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*TopLevelClassMapping, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}
