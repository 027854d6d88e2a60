package hydrators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/model"
)

// TestLambdaClosureCapturesSlots exercises spec §8's seed: a method
// captures locals at slots {1,2} into a lambda body lambda$test$0.
func TestLambdaClosureCapturesSlots(t *testing.T) {
	lambdaBody := model.NewMethodRecord("lambda$test$0", "(II)V", model.Private, false, false, true, false, false, true, nil)
	containing := model.NewMethodRecord("test", "()V", model.Public, false, false, false, false, false, false, nil)
	containing.Instructions = []model.Instruction{
		{Op: model.OpLoadLocal, Slot: 1},
		{Op: model.OpLoadLocal, Slot: 2},
		{Op: model.OpInvokeDynamic, Descriptor: "()Ljava/lang/Runnable;", BootstrapIndex: 0},
		{Op: model.OpReturn},
	}

	c := model.NewClassRecord("a/Holder", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{containing, lambdaBody}, nil)
	c.BootstrapMethods = []model.BootstrapMethod{
		{MethodOwner: "a/Holder", MethodName: "lambda$test$0", MethodDescriptor: "(II)V"},
	}

	builder := NewLambdaClosureBuilder()
	require.NoError(t, builder.Hydrate(c, nil))

	closure, ok := model.AttributeGet(lambdaBody.Attributes, LambdaClosureKey)
	require.True(t, ok)
	assert.Same(t, containing, closure.Containing)
	assert.Same(t, lambdaBody, closure.Lambda)
	assert.Equal(t, []int{1, 2}, closure.CapturedSlots)

	containingClosures, ok := model.AttributeGet(containing.Attributes, ContainingLambdaClosuresKey)
	require.True(t, ok)
	require.Len(t, containingClosures, 1)
	assert.Same(t, closure, containingClosures[0])
}

func TestLambdaClosureSkipsNonSyntheticTargets(t *testing.T) {
	real := model.NewMethodRecord("helper", "()V", model.Public, false, false, false, false, false, true, nil)
	containing := model.NewMethodRecord("test", "()V", model.Public, false, false, false, false, false, false, nil)
	containing.Instructions = []model.Instruction{
		{Op: model.OpInvokeDynamic, BootstrapIndex: 0},
	}
	c := model.NewClassRecord("a/Holder", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{containing, real}, nil)
	c.BootstrapMethods = []model.BootstrapMethod{
		{MethodOwner: "a/Holder", MethodName: "helper", MethodDescriptor: "()V"},
	}

	builder := NewLambdaClosureBuilder()
	require.NoError(t, builder.Hydrate(c, nil))
	assert.False(t, model.AttributeContains(real.Attributes, LambdaClosureKey))
}
