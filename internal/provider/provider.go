package provider

import (
	"sync"

	"github.com/hypoanalysis/hypo/internal/model"
)

// Decorator back-links a freshly decoded record to its owning provider and
// sets the context-class flag (spec §4.C). The Context component supplies
// this function; Provider itself only knows to call it.
type Decorator func(rec *model.ClassRecord)

type cacheSlot struct {
	once   sync.Once
	record *model.ClassRecord
	found  bool
	err    error
}

// Provider composes one or more roots behind a single concurrent decode
// cache. Roots are consulted in declaration order; the first root to
// resolve a name wins.
type Provider struct {
	roots                  []Root
	decoder                Decoder
	isContextClassProvider bool

	mu        sync.RWMutex
	decorator Decorator

	cache sync.Map // normalized name -> *cacheSlot
}

// NewProvider composes roots under decoder. isContextClassProvider marks
// this provider as classpath-only: referenced during analysis but not
// iterated as a hydration/completion subject.
func NewProvider(roots []Root, decoder Decoder, isContextClassProvider bool) *Provider {
	return &Provider{roots: roots, decoder: decoder, isContextClassProvider: isContextClassProvider}
}

// IsContextClassProvider reports the flag passed to NewProvider.
func (p *Provider) IsContextClassProvider() bool { return p.isContextClassProvider }

// SetDecorator installs the decorator called on every freshly decoded
// record. Must be called before the first Find; installing it later than
// that is a programmer error (spec §4.C precondition).
func (p *Provider) SetDecorator(d Decorator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decorator = d
}

func (p *Provider) decoratorFunc() Decorator {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.decorator
}

// Find resolves name to a ClassRecord, decoding at most once per
// normalized name even under concurrent callers (spec §8 testable
// property 5).
func (p *Provider) Find(name string) (*model.ClassRecord, bool, error) {
	key := normalizeClassName(name)
	v, _ := p.cache.LoadOrStore(key, &cacheSlot{})
	slot := v.(*cacheSlot)
	slot.once.Do(func() {
		slot.record, slot.found, slot.err = p.decodeAndDecorate(key)
	})
	return slot.record, slot.found, slot.err
}

func (p *Provider) decodeAndDecorate(name string) (*model.ClassRecord, bool, error) {
	rec, found, err := p.decode(name)
	if err != nil || !found {
		return nil, found, err
	}
	decorator := p.decoratorFunc()
	if decorator == nil {
		return nil, false, model.ErrNotDecorated
	}
	decorator(rec)
	return rec, true, nil
}

func (p *Provider) decode(name string) (*model.ClassRecord, bool, error) {
	for _, r := range p.roots {
		data, ok, err := r.GetClassBytes(name)
		if err != nil {
			return nil, false, &DecodeFailure{Name: name, Err: err}
		}
		if !ok {
			continue
		}
		rec, err := p.decoder.Decode(name, data)
		if err != nil {
			return nil, false, &DecodeFailure{Name: name, Err: err}
		}
		return rec, true, nil
	}
	return nil, false, nil
}

// ListAll enumerates every class reachable from any root, in root
// declaration order, deduplicated so a name present in more than one root
// is reported once (matching Find's first-root-wins semantics).
func (p *Provider) ListAll() ([]ClassReference, error) {
	seen := make(map[string]struct{})
	var out []ClassReference
	for _, r := range p.roots {
		refs, err := r.ListAll()
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			name := normalizeClassName(ref.Name)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, ClassReference{Name: name})
		}
	}
	return out, nil
}

// Close closes every root, aggregating any failures.
func (p *Provider) Close() error {
	var errs []error
	for _, r := range p.roots {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}
