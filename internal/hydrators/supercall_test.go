package hydrators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypoanalysis/hypo/internal/model"
)

// TestSuperConstructorChainScenario exercises spec §8's seed: A(int i);
// B(int i, int j) { super(i); }; C(int i, int j, int k) { super(i, j); }.
// Expected: SUPER_CALL_TARGET(C.ctor3).params = [(0→0),(1→1)];
// chain(C→B, B→A).params = [(0→0)].
func TestSuperConstructorChainScenario(t *testing.T) {
	aCtor := model.NewMethodRecord("<init>", "(I)V", model.Public, false, false, false, false, false, false, nil)
	a := model.NewClassRecord("a/A", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{aCtor}, nil)

	bCtor := model.NewMethodRecord("<init>", "(II)V", model.Public, false, false, false, false, false, false, nil)
	bCtor.Instructions = []model.Instruction{
		{Op: model.OpLoadLocal, Slot: 0},
		{Op: model.OpLoadLocal, Slot: 1}, // param i (slot 1 -> param index 0)
		{Op: model.OpInvokeSpecial, Owner: "a/A", Name: "<init>", Descriptor: "(I)V"},
		{Op: model.OpReturn},
	}
	b := model.NewClassRecord("a/B", model.KindClass, model.Public, false, false, "", "a/A",
		nil, nil, []*model.MethodRecord{bCtor}, nil)

	cCtor := model.NewMethodRecord("<init>", "(III)V", model.Public, false, false, false, false, false, false, nil)
	cCtor.Instructions = []model.Instruction{
		{Op: model.OpLoadLocal, Slot: 0},
		{Op: model.OpLoadLocal, Slot: 1}, // param i (index 0)
		{Op: model.OpLoadLocal, Slot: 2}, // param j (index 1)
		{Op: model.OpInvokeSpecial, Owner: "a/B", Name: "<init>", Descriptor: "(II)V"},
		{Op: model.OpReturn},
	}
	model.NewClassRecord("a/C", model.KindClass, model.Public, false, false, "", "a/B",
		nil, nil, []*model.MethodRecord{cCtor}, nil)

	linker := NewSuperConstructorLinker()

	full := newFixtureContext(t, map[string]*model.ClassRecord{
		"a/A": a,
		"a/B": b,
		"a/C": cCtor.Parent,
	})
	defer full.Close()

	require.NoError(t, linker.Hydrate(bCtor, full))
	require.NoError(t, linker.Hydrate(cCtor, full))

	cToB, ok := model.AttributeGet(cCtor.Attributes, SuperCallTargetKey)
	require.True(t, ok)
	assert.Same(t, bCtor, cToB.Target)
	require.Equal(t, []SuperCallParameter{{ThisIndex: 0, SuperIndex: 0}, {ThisIndex: 1, SuperIndex: 1}}, cToB.Params)

	bToA, ok := model.AttributeGet(bCtor.Attributes, SuperCallTargetKey)
	require.True(t, ok)
	assert.Same(t, aCtor, bToA.Target)

	chained := Chain(cToB, bToA)
	assert.Same(t, aCtor, chained.Target)
	assert.Equal(t, []SuperCallParameter{{ThisIndex: 0, SuperIndex: 0}}, chained.Params)
}

func TestSuperCallerSourcesAccumulate(t *testing.T) {
	aCtor := model.NewMethodRecord("<init>", "(I)V", model.Public, false, false, false, false, false, false, nil)
	a := model.NewClassRecord("a/A", model.KindClass, model.Public, false, false, "", "java/lang/Object",
		nil, nil, []*model.MethodRecord{aCtor}, nil)

	bCtor := model.NewMethodRecord("<init>", "(I)V", model.Public, false, false, false, false, false, false, nil)
	bCtor.Instructions = []model.Instruction{
		{Op: model.OpLoadLocal, Slot: 0},
		{Op: model.OpLoadLocal, Slot: 1},
		{Op: model.OpInvokeSpecial, Owner: "a/A", Name: "<init>", Descriptor: "(I)V"},
		{Op: model.OpReturn},
	}
	model.NewClassRecord("a/B", model.KindClass, model.Public, false, false, "", "a/A",
		nil, nil, []*model.MethodRecord{bCtor}, nil)

	ctx := newFixtureContext(t, map[string]*model.ClassRecord{"a/A": a, "a/B": bCtor.Parent})
	defer ctx.Close()

	linker := NewSuperConstructorLinker()
	require.NoError(t, linker.Hydrate(bCtor, ctx))
	require.NoError(t, linker.Hydrate(bCtor, ctx))

	sources, ok := model.AttributeGet(aCtor.Attributes, SuperCallerSourcesKey)
	require.True(t, ok)
	assert.Len(t, sources, 1, "re-running must not duplicate the caller-source entry")
}

func TestChainAssociativity(t *testing.T) {
	a := &SuperCall{Params: []SuperCallParameter{{ThisIndex: 0, SuperIndex: 0}, {ThisIndex: 1, SuperIndex: 1}}}
	b := &SuperCall{Params: []SuperCallParameter{{ThisIndex: 0, SuperIndex: 0}}}
	c := &SuperCall{Params: []SuperCallParameter{{ThisIndex: 0, SuperIndex: 5}}}

	left := Chain(Chain(a, b), c)
	right := Chain(a, Chain(b, c))
	assert.Equal(t, left.Params, right.Params)
}
