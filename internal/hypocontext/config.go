package hypocontext

import (
	"github.com/hypoanalysis/hypo/internal/model"
	"github.com/hypoanalysis/hypo/internal/provider"
)

// DecoratorFactory builds the per-provider Decorator a Context installs
// on every provider it composes (spec §4.C/§4.D). The default wiring
// back-links a record to p and the context-class flag; callers only need
// this hook to customize that behavior (e.g. extra bookkeeping per
// record).
type DecoratorFactory func(p *provider.Provider, resolver model.ClassResolver) provider.Decorator

// Config holds the options enumerated in spec §4.D.
type Config struct {
	// Parallelism sizes the worker pool; <= 0 means host CPU count.
	Parallelism int
	// DecoratorFactory overrides the default decorator wiring. Nil means
	// default wiring only.
	DecoratorFactory DecoratorFactory
	// RequireFullClasspath: when true, unresolved lookups during
	// hydration fail; when false, they fold to absent.
	RequireFullClasspath bool
}

// DefaultConfig mirrors spec §4.D's stated defaults.
func DefaultConfig() Config {
	return Config{
		Parallelism:          -1,
		RequireFullClasspath: true,
	}
}
