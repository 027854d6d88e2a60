package provider

import (
	"errors"

	"github.com/hypoanalysis/hypo/internal/model"
)

func joinErrors(errs []error) error {
	return errors.Join(errs...)
}

// ProviderSet composes multiple providers with first-wins lookup,
// concatenated enumeration, and aggregated close (spec §4.C).
type ProviderSet struct {
	providers []*Provider
}

// NewProviderSet composes providers in declaration order.
func NewProviderSet(providers ...*Provider) *ProviderSet {
	return &ProviderSet{providers: providers}
}

// Find tries each provider in declaration order, returning the first hit.
func (s *ProviderSet) Find(name string) (*model.ClassRecord, bool, error) {
	for _, p := range s.providers {
		rec, ok, err := p.Find(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

// ListAll concatenates every member provider's enumeration, in
// declaration order.
func (s *ProviderSet) ListAll() ([]ClassReference, error) {
	var out []ClassReference
	for _, p := range s.providers {
		refs, err := p.ListAll()
		if err != nil {
			return nil, err
		}
		out = append(out, refs...)
	}
	return out, nil
}

// Close closes every member provider, aggregating failures.
func (s *ProviderSet) Close() error {
	var errs []error
	for _, p := range s.providers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

// Providers returns the member providers in declaration order.
func (s *ProviderSet) Providers() []*Provider {
	out := make([]*Provider, len(s.providers))
	copy(out, s.providers)
	return out
}
