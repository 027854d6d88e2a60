// Package hydration runs the two-phase derivation pass over a Context's
// core classes: a base hierarchy walk that resolves override relations,
// followed by provider-kind dispatch that fans concrete HydrationProvider
// implementations out across the worker pool.
package hydration

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
)

// Provider is the generic hydration contract, keyed by the record kind it
// targets. Hydrate may inspect bytecode and read or write attribute values
// on any record reachable through ctx. Writes must be idempotent under
// re-run; a provider serializes its own concurrent writes to one record
// using that record's attribute map compute-if-absent rather than relying
// on the framework for it.
type Provider[T any] interface {
	Hydrate(rec T, ctx *hypocontext.Context) error
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc[T any] func(rec T, ctx *hypocontext.Context) error

func (f ProviderFunc[T]) Hydrate(rec T, ctx *hypocontext.Context) error { return f(rec, ctx) }

// Framework holds the three ordered provider lists and orchestrates both
// hydration phases over one Context.
type Framework struct {
	classProviders  []Provider[*model.ClassRecord]
	methodProviders []Provider[*model.MethodRecord]
	fieldProviders  []Provider[*model.FieldRecord]
}

// NewFramework builds a Framework from ordered provider lists. Each list's
// declaration order is the order its providers run in during phase 2.
func NewFramework(
	classProviders []Provider[*model.ClassRecord],
	methodProviders []Provider[*model.MethodRecord],
	fieldProviders []Provider[*model.FieldRecord],
) *Framework {
	return &Framework{
		classProviders:  classProviders,
		methodProviders: methodProviders,
		fieldProviders:  fieldProviders,
	}
}
