package hydrators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/model"
)

// TestSyntheticBridgeLinksRealMethod exercises spec §8's synthetic-bridge
// scenario: a bridge `String get()` that adapts `this` and forwards to the
// real `Object get()` in the same class.
func TestSyntheticBridgeLinksRealMethod(t *testing.T) {
	real := model.NewMethodRecord("get", "()Ljava/lang/Object;", model.Public, false, false, false, false, false, false, nil)
	bridge := model.NewMethodRecord("get", "()Ljava/lang/String;", model.Public, false, false, true, true, false, false, nil)
	bridge.Instructions = []model.Instruction{
		{Op: model.OpLoadLocal, Slot: 0},
		{Op: model.OpInvokeVirtual, Owner: "a/Box", Name: "get", Descriptor: "()Ljava/lang/Object;"},
		{Op: model.OpAdapt},
		{Op: model.OpReturn},
	}
	model.NewClassRecord("a/Box", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{real, bridge}, nil)

	linker := NewSyntheticBridgeLinker()
	require.NoError(t, linker.Hydrate(bridge, nil))

	target, ok := model.AttributeGet(bridge.Attributes, SyntheticTargetKey)
	require.True(t, ok)
	assert.Same(t, real, target)

	sources, ok := model.AttributeGet(real.Attributes, SyntheticSourceKey)
	require.True(t, ok)
	require.Len(t, sources, 1)
	assert.Same(t, bridge, sources[0])
}

func TestSyntheticBridgeHydrateIsIdempotent(t *testing.T) {
	real := model.NewMethodRecord("get", "()Ljava/lang/Object;", model.Public, false, false, false, false, false, false, nil)
	bridge := model.NewMethodRecord("get", "()Ljava/lang/String;", model.Public, false, false, true, true, false, false, nil)
	bridge.Instructions = []model.Instruction{
		{Op: model.OpInvokeVirtual, Owner: "a/Box", Name: "get", Descriptor: "()Ljava/lang/Object;"},
		{Op: model.OpReturn},
	}
	model.NewClassRecord("a/Box", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{real, bridge}, nil)

	linker := NewSyntheticBridgeLinker()
	require.NoError(t, linker.Hydrate(bridge, nil))
	require.NoError(t, linker.Hydrate(bridge, nil))

	sources, _ := model.AttributeGet(real.Attributes, SyntheticSourceKey)
	assert.Len(t, sources, 1, "re-running hydration must not duplicate the back-link")
}

func TestSyntheticBridgeIgnoresNonSynthetic(t *testing.T) {
	m := model.NewMethodRecord("get", "()Ljava/lang/Object;", model.Public, false, false, false, false, false, false, nil)
	model.NewClassRecord("a/Box", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{m}, nil)

	linker := NewSyntheticBridgeLinker()
	require.NoError(t, linker.Hydrate(m, nil))
	assert.False(t, model.AttributeContains(m.Attributes, SyntheticTargetKey))
}
