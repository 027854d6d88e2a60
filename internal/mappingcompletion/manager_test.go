package mappingcompletion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
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

func simpleClass(name string) *model.ClassRecord {
	return model.NewClassRecord(name, model.KindClass, model.Public, false, false, "", "java/lang/Object", nil, nil, nil, nil)
}

func TestMappingsCompletionManagerVisitsMappedAndUnmappedClasses(t *testing.T) {
	records := map[string]*model.ClassRecord{
		"a/Mapped":   simpleClass("a/Mapped"),
		"a/Unmapped": simpleClass("a/Unmapped"),
	}
	ctx := newFixtureContext(t, records)

	set := mapping.NewMappingSet()
	set.AddTopLevelClass(mapping.NewTopLevelClassMapping("a/Mapped", "a/Mapped"))

	var visitedRecords []string
	var visitedMappings []string
	contributor := ChangeContributorFunc(func(record *model.ClassRecord, cm mapping.ClassMapping, _ *hypocontext.Context, _ *ChangeRegistry) error {
		if record != nil {
			visitedRecords = append(visitedRecords, record.Name)
		}
		if cm != nil {
			visitedMappings = append(visitedMappings, cm.ObfuscatedName())
		}
		return nil
	})

	mgr := NewMappingsCompletionManager(contributor)
	_, err := mgr.Run(ctx, set)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a/Mapped", "a/Unmapped"}, visitedRecords)
	assert.ElementsMatch(t, []string{"a/Mapped"}, visitedMappings)
}

func TestRegistrySubmitMergesRemoveParameterIndices(t *testing.T) {
	registry := NewChangeRegistry()
	target := MemberReference{ClassName: "a/C", Name: "m", Descriptor: "(II)V"}

	require.NoError(t, registry.Submit(&RemoveParameterMappingChange{Target: target, Indices: []int{0}}))
	require.NoError(t, registry.Submit(&RemoveParameterMappingChange{Target: target, Indices: []int{2}}))

	changes := registry.Changes()
	require.Len(t, changes, 1)
	for _, c := range changes {
		rp := c.(*RemoveParameterMappingChange)
		assert.Equal(t, []int{0, 2}, rp.Indices)
	}
}

func TestRegistrySubmitFailsUnmergeableCollision(t *testing.T) {
	registry := NewChangeRegistry()
	target := MemberReference{ClassName: "a/C", Name: "m", Descriptor: "()V"}

	require.NoError(t, registry.Submit(&RenameMappingChange{Target: target, Kind: MemberKindMethod, NewName: "one"}))
	err := registry.Submit(&RemoveMappingChange{Target: target, Kind: MemberKindMethod})
	require.Error(t, err)
	var collision *UnmergeableCollisionError
	require.ErrorAs(t, err, &collision)
}

func TestRegistrySubmitRecordsMergeFailureForConflictingRenames(t *testing.T) {
	registry := NewChangeRegistry()
	target := MemberReference{ClassName: "a/C", Name: "m", Descriptor: "()V"}

	require.NoError(t, registry.Submit(&RenameMappingChange{Target: target, Kind: MemberKindMethod, NewName: "one"}))
	require.NoError(t, registry.Submit(&RenameMappingChange{Target: target, Kind: MemberKindMethod, NewName: "two"}))

	failures := registry.Failures()
	require.Len(t, failures, 1)

	set := mapping.NewMappingSet()
	cm := mapping.NewTopLevelClassMapping("a/C", "a/C")
	cm.AddMethod(mapping.NewMethodMapping("m", "m", "()V"))
	set.AddTopLevelClass(cm)

	diagnostics := registry.Apply(set)
	require.Len(t, diagnostics, 1)
	method, ok := cm.Method("m", "()V")
	require.True(t, ok)
	assert.Equal(t, "m", method.Deobfuscated, "unapplied collision must leave the original mapping untouched")
}

func TestCopyMethodMappingToTargetCopiesNameAndParameters(t *testing.T) {
	set := mapping.NewMappingSet()
	cm := mapping.NewTopLevelClassMapping("a/C", "a/C")
	real := mapping.NewMethodMapping("get", "fetch", "()Ljava/lang/Object;")
	real.AddParameter(mapping.NewMethodParameterMapping(0, "key"))
	cm.AddMethod(real)
	cm.AddMethod(mapping.NewMethodMapping("get", "get", "()Ljava/lang/String;"))
	set.AddTopLevelClass(cm)

	change := &CopyMethodMappingToTargetChange{
		Source: MemberReference{ClassName: "a/C", Name: "get", Descriptor: "()Ljava/lang/Object;"},
		Target: MemberReference{ClassName: "a/C", Name: "get", Descriptor: "()Ljava/lang/String;"},
	}
	require.NoError(t, change.Apply(set))

	bridge, ok := cm.Method("get", "()Ljava/lang/String;")
	require.True(t, ok)
	assert.Equal(t, "fetch", bridge.Deobfuscated)
	param, ok := bridge.Parameter(0)
	require.True(t, ok)
	assert.Equal(t, "key", param.Deobfuscated)
}

func TestChangeChainAppliesEachStepBeforeTheNext(t *testing.T) {
	records := map[string]*model.ClassRecord{"a/C": simpleClass("a/C")}
	ctx := newFixtureContext(t, records)

	set := mapping.NewMappingSet()
	cm := mapping.NewTopLevelClassMapping("a/C", "a/C")
	cm.AddMethod(mapping.NewMethodMapping("m", "m", "()V"))
	set.AddTopLevelClass(cm)

	stepOne := ChangeContributorFunc(func(_ *model.ClassRecord, classMapping mapping.ClassMapping, _ *hypocontext.Context, registry *ChangeRegistry) error {
		return registry.Submit(&RenameMappingChange{
			Target:  MemberReference{ClassName: classMapping.ObfuscatedName(), Name: "m", Descriptor: "()V"},
			Kind:    MemberKindMethod,
			NewName: "renamed",
		})
	})
	stepTwo := ChangeContributorFunc(func(_ *model.ClassRecord, classMapping mapping.ClassMapping, _ *hypocontext.Context, registry *ChangeRegistry) error {
		method, ok := classMapping.Method("m", "()V")
		require.True(t, ok)
		assert.Equal(t, "renamed", method.Deobfuscated, "step two must observe step one's applied rename")
		return nil
	})

	chain := NewChangeChain([]ChangeContributor{stepOne}, []ChangeContributor{stepTwo})
	results, err := chain.Run(ctx, set)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Diff)
}
