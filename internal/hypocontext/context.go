// Package hypocontext bundles the provider sets, configuration, and worker
// pool a hydration or mappings-completion run shares for its lifetime (spec
// §4.D). A Context owns exactly one combined lookup domain: every provider,
// core or context-only, resolves through it, while the core set is kept
// separately for iteration since only core classes are hydration/completion
// subjects.
package hypocontext

import (
	"github.com/hypoanalysis/hypo/internal/model"
	"github.com/hypoanalysis/hypo/internal/provider"
)

// Context is the shared environment for one analysis run.
type Context struct {
	config Config

	core    *provider.ProviderSet
	context *provider.ProviderSet
	all     *provider.ProviderSet

	pool *WorkerPool
}

// NewContext composes coreProviders (hydration/completion subjects) and
// contextProviders (classpath-only, resolvable but never iterated) into one
// Context. Every provider, from either slice, is decorated with a resolver
// that searches the combined set, so a lookup made while decoding a core
// class can resolve a superclass that only exists in a context jar.
func NewContext(cfg Config, coreProviders []*provider.Provider, contextProviders []*provider.Provider) *Context {
	core := provider.NewProviderSet(coreProviders...)
	ctxSet := provider.NewProviderSet(contextProviders...)
	all := provider.NewProviderSet(append(append([]*provider.Provider{}, coreProviders...), contextProviders...)...)

	factory := cfg.DecoratorFactory
	if factory == nil {
		factory = defaultDecoratorFactory
	}

	// model.ClassResolver carries no error channel, matching the
	// resolver hook ClassRecord itself exposes; a lookup failure during
	// hydration surfaces instead through the class that triggered it
	// being handed back unresolved, not swallowed invisibly.
	resolver := model.ClassResolver(func(name string) (*model.ClassRecord, bool) {
		rec, ok, _ := all.Find(name)
		return rec, ok
	})
	for _, p := range coreProviders {
		p.SetDecorator(factory(p, resolver))
	}
	for _, p := range contextProviders {
		p.SetDecorator(factory(p, resolver))
	}

	return &Context{
		config:  cfg,
		core:    core,
		context: ctxSet,
		all:     all,
	}
}

func defaultDecoratorFactory(p *provider.Provider, resolver model.ClassResolver) provider.Decorator {
	return func(rec *model.ClassRecord) {
		rec.Decorate(p, resolver, p.IsContextClassProvider())
	}
}

// Config returns the configuration this Context was built with.
func (c *Context) Config() Config { return c.config }

// CoreProviderSet is the set hydration and mappings-completion iterate over.
func (c *Context) CoreProviderSet() *provider.ProviderSet { return c.core }

// ContextProviderSet is the classpath-only set: resolvable, never iterated.
func (c *Context) ContextProviderSet() *provider.ProviderSet { return c.context }

// AllProviderSet is the combined lookup domain used to resolve any class
// name regardless of which set declared it.
func (c *Context) AllProviderSet() *provider.ProviderSet { return c.all }

// Pool returns the worker pool, creating it on first use sized from
// Config.Parallelism.
func (c *Context) Pool() *WorkerPool {
	if c.pool == nil {
		c.pool = NewWorkerPool(c.config.Parallelism)
	}
	return c.pool
}

// Close shuts the worker pool down forcibly, if one was ever created, and
// closes every composed provider, aggregating close failures. It returns
// ErrClosedWhileTasksRunning first if tasks were still in flight when called
// (spec §4.D: closing with running tasks is a programmer error worth
// surfacing), but the shutdown and provider closes still happen.
func (c *Context) Close() error {
	var pending bool
	if c.pool != nil {
		pending = c.pool.Pending()
		c.pool.Shutdown()
	}
	err := c.all.Close()
	if pending {
		if err != nil {
			return errClosedWhileTasksRunningWith(err)
		}
		return ErrClosedWhileTasksRunning
	}
	return err
}
