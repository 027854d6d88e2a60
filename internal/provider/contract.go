// Package provider resolves class names to decoded ClassRecords across one
// or more roots, with at-most-once decoding per normalized name. A Root is
// the narrow capability {get_class_bytes, list_all, close}; a Provider
// composes roots with a shared decode cache and decorator; a ProviderSet
// composes providers with first-wins lookup and concatenated enumeration.
package provider

import (
	"fmt"
	"strings"

	"github.com/hypoanalysis/hypo/internal/model"
)

// ClassReference names one class discoverable from a root, in the root's
// normalized internal form (slash-separated, no ".class" suffix).
type ClassReference struct {
	Name string
}

// Root is the minimal capability a source of class bytes must expose.
// Built-in kinds: DirectoryRoot, ArchiveRoot, ModuleImageRoot (spec §6).
type Root interface {
	// GetClassBytes returns the raw bytes for name, or (nil, false, nil)
	// if this root has nothing under that name.
	GetClassBytes(name string) ([]byte, bool, error)
	// ListAll enumerates every class reachable from this root.
	ListAll() ([]ClassReference, error)
	Close() error
}

// Decoder is the class-source adapter boundary (spec §6): given the raw
// bytes of one class file it yields a decoded structural record. The
// byte-level class file format is treated as an opaque external
// collaborator; callers supply a Decoder backed by whatever
// bytecode-manipulation library they prefer.
type Decoder interface {
	Decode(name string, data []byte) (*model.ClassRecord, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc func(name string, data []byte) (*model.ClassRecord, error)

func (f DecoderFunc) Decode(name string, data []byte) (*model.ClassRecord, error) {
	return f(name, data)
}

// DecodeFailure wraps an I/O or structural decode error with the class
// name being resolved (spec §7: a DecodeFailure is always propagated,
// never folded to absent).
type DecodeFailure struct {
	Name string
	Err  error
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("provider: decode failure for %q: %v", e.Name, e.Err)
}

func (e *DecodeFailure) Unwrap() error { return e.Err }

func normalizeClassName(name string) string {
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimSuffix(name, ".class")
	return name
}
