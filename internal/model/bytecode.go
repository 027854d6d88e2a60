package model

// Opcode is a coarse instruction-kind tag, reduced to exactly what the
// hydrators in internal/hydrators need to recognize their narrow patterns
// (argument-adaptation bridges, super-call prefixes, lambda captures).
// Full instruction-set decoding is the opaque external collaborator named
// in spec §1; this is not a VM instruction set, just the shape a Decoder
// implementation projects bytecode into for the hydrators to scan.
type Opcode int

const (
	// OpLoadLocal reads a local-variable-table slot onto the stack
	// (any of the VM's iload/aload/lload/... family).
	OpLoadLocal Opcode = iota
	// OpAdapt is a value adaptation with no side effect relevant to
	// linkage: a checkcast, a numeric widen/narrow, or an unbox/box.
	OpAdapt
	OpInvokeSpecial
	OpInvokeStatic
	OpInvokeVirtual
	OpInvokeInterface
	OpInvokeDynamic
	OpReturn
	// OpOther is every instruction not named above; hydrators that scan
	// for a specific shape treat it as "not a match" rather than error.
	OpOther
)

// Instruction is one decoded bytecode instruction, reduced to the fields
// a hydrator's pattern scan needs.
type Instruction struct {
	Op Opcode

	// Slot is populated for OpLoadLocal: the local-variable-table slot
	// read by this load.
	Slot int

	// Owner/Name/Descriptor are populated for the OpInvoke* kinds: the
	// static call target (or, for OpInvokeDynamic, the descriptor of the
	// generated call site itself).
	Owner      string
	Name       string
	Descriptor string

	// BootstrapIndex is populated for OpInvokeDynamic: an index into the
	// declaring class's BootstrapMethods.
	BootstrapIndex int
}

// BootstrapMethod is one entry of a class's bootstrap-method table,
// referenced by that class's OpInvokeDynamic instructions. It names the
// synthetic lambda body the call site ultimately invokes and, when
// resolvable, the functional interface the generated instance implements.
type BootstrapMethod struct {
	MethodOwner      string
	MethodName       string
	MethodDescriptor string

	// SamInterface/SamMethod are the functional-interface type and method
	// implemented by the generated call site, when the bootstrap's static
	// arguments make that resolvable; both empty otherwise (spec §4.F:
	// "interfaceMethod is the functional-interface SAM, if resolvable;
	// absent otherwise").
	SamInterface string
	SamMethod    string
}
