package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingSetPreservesDeclarationOrder(t *testing.T) {
	set := NewMappingSet()
	set.AddTopLevelClass(NewTopLevelClassMapping("a/b", "com/example/B"))
	set.AddTopLevelClass(NewTopLevelClassMapping("a/a", "com/example/A"))

	got := set.TopLevelClasses()
	require.Len(t, got, 2)
	assert.Equal(t, "a/b", got[0].ObfuscatedName())
	assert.Equal(t, "a/a", got[1].ObfuscatedName())
}

func TestMappingSetRemoveTopLevelClass(t *testing.T) {
	set := NewMappingSet()
	set.AddTopLevelClass(NewTopLevelClassMapping("a/b", "com/example/B"))
	require.True(t, set.RemoveTopLevelClass("a/b"))
	assert.False(t, set.RemoveTopLevelClass("a/b"))
	_, ok := set.TopLevelClass("a/b")
	assert.False(t, ok)
}

func TestClassMappingFieldAndMethodLookup(t *testing.T) {
	c := NewTopLevelClassMapping("a/b", "com/example/B")
	c.AddField(NewFieldMapping("a", "count", "I"))
	c.AddMethod(NewMethodMapping("a", "increment", "()V"))

	f, ok := c.Field("a", "I")
	require.True(t, ok)
	assert.Equal(t, "count", f.Deobfuscated)

	m, ok := c.Method("a", "()V")
	require.True(t, ok)
	assert.Equal(t, "increment", m.Deobfuscated)

	require.True(t, c.RemoveField("a", "I"))
	_, ok = c.Field("a", "I")
	assert.False(t, ok)
}

func TestMethodParameterMappingReplaceAtIndex(t *testing.T) {
	m := NewMethodMapping("a", "connect", "(ILjava/lang/String;)V")
	m.AddParameter(NewMethodParameterMapping(0, "port"))
	m.AddParameter(NewMethodParameterMapping(0, "portNumber"))

	p, ok := m.Parameter(0)
	require.True(t, ok)
	assert.Equal(t, "portNumber", p.Deobfuscated)
	assert.Len(t, m.Parameters(), 1, "re-adding at the same index replaces rather than duplicates")
}

func TestInnerClassMappingNesting(t *testing.T) {
	outer := NewTopLevelClassMapping("a/b", "com/example/B")
	inner := NewInnerClassMapping("a/b$1", "com/example/B$Helper")
	outer.AddInnerClass(inner)

	got, ok := outer.InnerClass("a/b$1")
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Len(t, outer.InnerClasses(), 1)
}

func TestClassMappingSatisfiesInterfaceForBothKinds(t *testing.T) {
	var _ ClassMapping = NewTopLevelClassMapping("a", "A")
	var _ ClassMapping = NewInnerClassMapping("a$1", "A$1")
}
