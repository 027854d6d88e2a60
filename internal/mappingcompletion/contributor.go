package mappingcompletion

import (
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
	"github.com/hypoanalysis/hypo/internal/model"
)

// ChangeContributor is spec §4.G's `contribute(record?, mapping?, context,
// registry)`: given the hydrated class record (nil when the contributor is
// visiting a mapping that has no corresponding core class, e.g. a stale
// entry) and/or its existing mapping (nil when the class has no mapping
// yet), it submits proposed Change values into registry. A contributor may
// submit zero, one, or several changes per visit.
type ChangeContributor interface {
	Contribute(record *model.ClassRecord, classMapping mapping.ClassMapping, ctx *hypocontext.Context, registry *ChangeRegistry) error
}

// ChangeContributorFunc adapts a plain function to ChangeContributor.
type ChangeContributorFunc func(record *model.ClassRecord, classMapping mapping.ClassMapping, ctx *hypocontext.Context, registry *ChangeRegistry) error

func (f ChangeContributorFunc) Contribute(record *model.ClassRecord, classMapping mapping.ClassMapping, ctx *hypocontext.Context, registry *ChangeRegistry) error {
	return f(record, classMapping, ctx, registry)
}

// CompositeContributor runs every member contributor in declaration order
// against the same (record, classMapping) pair, matching spec §4.G's "a
// list of contributors (treated as a composite)". The first error from any
// member aborts the composite for that visit.
type CompositeContributor struct {
	Members []ChangeContributor
}

// NewCompositeContributor builds a composite from members, run in order.
func NewCompositeContributor(members ...ChangeContributor) *CompositeContributor {
	return &CompositeContributor{Members: members}
}

func (c *CompositeContributor) Contribute(record *model.ClassRecord, classMapping mapping.ClassMapping, ctx *hypocontext.Context, registry *ChangeRegistry) error {
	for _, m := range c.Members {
		if err := m.Contribute(record, classMapping, ctx, registry); err != nil {
			return err
		}
	}
	return nil
}
