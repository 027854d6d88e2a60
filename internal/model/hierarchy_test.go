package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireResolver(classes ...*ClassRecord) func(string) (*ClassRecord, bool) {
	byName := make(map[string]*ClassRecord, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
	}
	resolver := func(name string) (*ClassRecord, bool) {
		c, ok := byName[name]
		return c, ok
	}
	for _, c := range classes {
		c.Decorate("p", resolver, false)
	}
	return resolver
}

func TestClassHierarchyOfAncestorsDepthFirst(t *testing.T) {
	object := newTestClass("java/lang/Object", "")
	iface := newTestClass("a/Greets", "")
	base := NewClassRecord("a/Base", KindClass, Public, false, false, "", "java/lang/Object", []string{"a/Greets"}, nil, nil, nil)
	sub := newTestClass("a/Sub", "a/Base")

	wireResolver(object, iface, base, sub)

	ancestors, err := NewClassHierarchyOf(sub).Ancestors()
	require.NoError(t, err)

	var names []string
	for _, a := range ancestors {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"a/Base", "java/lang/Object", "a/Greets"}, names)
}

func TestClassHierarchyOfFindOverrideTargetSkipsIneligible(t *testing.T) {
	staticM := NewMethodRecord("helper", "()V", Public, false, false, false, false, false, true, nil)
	base := NewClassRecord("a/Base", KindClass, Public, false, false, "", "", nil, nil, []*MethodRecord{staticM}, nil)

	overridable := NewMethodRecord("helper", "()V", Public, false, false, false, false, false, false, nil)
	grandBase := NewClassRecord("a/GrandBase", KindClass, Public, false, false, "", "", nil, nil, []*MethodRecord{overridable}, nil)
	base.SuperClassName = "a/GrandBase"

	sub := newTestClass("a/Sub", "a/Base")

	wireResolver(grandBase, base, sub)

	target, ok, err := NewClassHierarchyOf(sub).FindOverrideTarget("helper", "()V")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, overridable, target, "static declaration in Base is ineligible, GrandBase's instance method is the real target")
}

func TestClassHierarchyOfUnresolvedAncestorEndsBranch(t *testing.T) {
	sub := newTestClass("a/Sub", "a/Missing")
	sub.Decorate("p", func(string) (*ClassRecord, bool) { return nil, false }, false)

	ancestors, err := NewClassHierarchyOf(sub).Ancestors()
	require.NoError(t, err)
	assert.Empty(t, ancestors)
}
