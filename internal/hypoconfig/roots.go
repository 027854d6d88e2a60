package hypoconfig

import (
	"fmt"

	"github.com/hypoanalysis/hypo/internal/provider"
)

// BuildRoot constructs the concrete provider.Root a RootSpec names. The
// byte-level class decoder itself stays external per spec §1; BuildRoot
// only opens the root's byte source, it never decodes anything.
func BuildRoot(spec RootSpec) (provider.Root, error) {
	switch spec.Kind {
	case RootKindDirectory:
		return provider.NewDirectoryRoot(spec.Path, spec.IncludeGlobs, spec.ExcludeGlobs), nil
	case RootKindArchive:
		return provider.NewArchiveRoot(spec.Path)
	case RootKindModuleImage:
		return nil, fmt.Errorf("hypoconfig: module-image root requires an fs.FS, construct it with provider.NewModuleImageRoot directly")
	default:
		return nil, fmt.Errorf("hypoconfig: unknown root kind %q", spec.Kind)
	}
}

// BuildProviders opens every root in specs, grouping each into its own
// single-root Provider (spec §4.C: a Provider composes one or more roots;
// keeping one root per provider here makes a single bad root's open
// failure identifiable). decoder is the caller-supplied decoder boundary
// (spec §1's opaque class-file decoding service); isContextClassProvider
// marks every resulting provider accordingly. Providers already opened
// before a failing root are returned alongside the error so the caller
// can still close them.
func BuildProviders(specs []RootSpec, decoder provider.Decoder, isContextClassProvider bool) ([]*provider.Provider, error) {
	providers := make([]*provider.Provider, 0, len(specs))
	for _, spec := range specs {
		root, err := BuildRoot(spec)
		if err != nil {
			return providers, fmt.Errorf("hypoconfig: opening root %s: %w", spec.Path, err)
		}
		providers = append(providers, provider.NewProvider([]provider.Root{root}, decoder, isContextClassProvider))
	}
	return providers, nil
}
