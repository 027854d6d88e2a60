package hydrators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/model"
)

func TestLocalClassClosureCapturesConstructorParameters(t *testing.T) {
	containing := model.NewMethodRecord("build", "()V", model.Public, false, false, false, false, false, false, nil)
	outer := model.NewClassRecord("a/Outer", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{containing}, nil)

	// Local class captures an outer-this (implicit) plus two locals.
	localCtor := model.NewMethodRecord("<init>", "(La/Outer;II)V", model.PackagePrivate, false, false, false, false, false, false, nil)
	local := model.NewClassRecord("a/Outer$1", model.KindClass, model.PackagePrivate, false, false, "a/Outer", "java/lang/Object",
		nil, nil, []*model.MethodRecord{localCtor}, nil)
	local.EnclosingMethodName = "build"
	local.EnclosingMethodDescriptor = "()V"

	resolver := func(name string) (*model.ClassRecord, bool) {
		if name == "a/Outer" {
			return outer, true
		}
		return nil, false
	}
	outer.Decorate("p", resolver, false)
	local.Decorate("p", resolver, false)

	builder := NewLocalClassClosureBuilder()
	require.NoError(t, builder.Hydrate(local, nil))

	closure, ok := model.AttributeGet(local.Attributes, LocalClassClosureKey)
	require.True(t, ok)
	assert.Same(t, containing, closure.Containing)
	assert.Equal(t, []int{1, 2}, closure.CapturedSlots, "positions after the implicit outer-this parameter")

	containingClosures, ok := model.AttributeGet(containing.Attributes, ContainingLocalClassClosuresKey)
	require.True(t, ok)
	require.Len(t, containingClosures, 1)
	assert.Same(t, closure, containingClosures[0])
}

func TestLocalClassClosureSkipsClassesWithoutEnclosingMethod(t *testing.T) {
	member := model.NewClassRecord("a/Outer$Inner", model.KindClass, model.Public, false, true, "a/Outer", "java/lang/Object",
		nil, nil, nil, nil)

	builder := NewLocalClassClosureBuilder()
	require.NoError(t, builder.Hydrate(member, nil))
	assert.False(t, model.AttributeContains(member.Attributes, LocalClassClosureKey))
}
