package hydrators

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

func newFixtureContext(t *testing.T, records map[string]*model.ClassRecord) *hypocontext.Context {
	t.Helper()
	dir := t.TempDir()
	for name := range records {
		classFile(t, dir, name)
	}
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
