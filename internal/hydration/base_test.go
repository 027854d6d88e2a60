package hydration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/model"
	"github.com/hypoanalysis/hypo/internal/provider"
)

func classFile(t *testing.T, dir, name string) {
	t.Helper()
	full := filepath.Join(dir, name+".class")
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
}

// newFixtureContext builds a Context over a single core directory provider
// whose decoder returns records from an in-memory table, keyed by name.
func newFixtureContext(t *testing.T, dir string, records map[string]*model.ClassRecord) *hypocontext.Context {
	decoder := provider.DecoderFunc(func(name string, data []byte) (*model.ClassRecord, error) {
		rec, ok := records[name]
		if !ok {
			return nil, assert.AnError
		}
		return rec, nil
	})
	root := provider.NewDirectoryRoot(dir, nil, nil)
	p := provider.NewProvider([]provider.Root{root}, decoder, false)
	return hypocontext.NewContext(hypocontext.DefaultConfig(), []*provider.Provider{p}, nil)
}

func TestRunBaseHydrationLinksOverridesAndChildren(t *testing.T) {
	dir := t.TempDir()
	classFile(t, dir, "a/Base")
	classFile(t, dir, "a/Sub")

	greetBase := model.NewMethodRecord("greet", "()V", model.Public, false, false, false, false, false, false, nil)
	base := model.NewClassRecord("a/Base", model.KindClass, model.Public, false, false, "", "", nil, nil,
		[]*model.MethodRecord{greetBase}, nil)

	greetSub := model.NewMethodRecord("greet", "()V", model.Public, false, false, false, false, false, false, nil)
	sub := model.NewClassRecord("a/Sub", model.KindClass, model.Public, false, false, "", "a/Base", nil, nil,
		[]*model.MethodRecord{greetSub}, nil)

	ctx := newFixtureContext(t, dir, map[string]*model.ClassRecord{"a/Base": base, "a/Sub": sub})
	defer ctx.Close()

	require.NoError(t, RunBaseHydration(ctx))

	assert.Contains(t, base.ChildClasses(), sub)

	superMethod, ok := greetSub.SuperMethod()
	require.True(t, ok)
	assert.Same(t, greetBase, superMethod)
	assert.Contains(t, greetBase.ChildMethods(), greetSub)
}

func TestRunBaseHydrationIgnoresStaticAsOverrideSources(t *testing.T) {
	dir := t.TempDir()
	classFile(t, dir, "a/Base")
	classFile(t, dir, "a/Sub")

	staticBase := model.NewMethodRecord("factory", "()V", model.Public, false, false, false, false, false, true, nil)
	base := model.NewClassRecord("a/Base", model.KindClass, model.Public, false, false, "", "", nil, nil,
		[]*model.MethodRecord{staticBase}, nil)

	staticSub := model.NewMethodRecord("factory", "()V", model.Public, false, false, false, false, false, true, nil)
	sub := model.NewClassRecord("a/Sub", model.KindClass, model.Public, false, false, "", "a/Base", nil, nil,
		[]*model.MethodRecord{staticSub}, nil)

	ctx := newFixtureContext(t, dir, map[string]*model.ClassRecord{"a/Base": base, "a/Sub": sub})
	defer ctx.Close()

	require.NoError(t, RunBaseHydration(ctx))

	_, ok := staticSub.SuperMethod()
	assert.False(t, ok, "static methods never participate in the override relation")
}
