package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4gshm/flexmap/dict"
)

func Test_NestedObject(t *testing.T) {
	a := MustSubclass(Declare("A").
		Field("i", Int, 3).
		Field("j", String, nil).
		Field("g", Int, Missing))
	b := MustSubclass(Declare("B").
		Field("a", ObjectOf(a)).
		Field("k", Int, 5))

	o, err := b.New(From(map[string]any{"a": map[string]any{"i": 7, "j": 21}}))
	require.NoError(t, err)

	k, _ := Value[int](o, "k")
	assert.Equal(t, 5, k)

	nested, err := Value[*Object](o, "a")
	require.NoError(t, err)
	assert.True(t, nested.IsInstance(a))
	assert.True(t, nested.IsInstance(JSONObject))
	i, _ := nested.Get("i")
	assert.Equal(t, 7, i)
	j, _ := nested.Get("j")
	assert.Equal(t, 21, j)
	_, err = nested.Get("g")
	assert.ErrorIs(t, err, ErrMissingKey)

	require.NoError(t, o.Set("a", nested))
	same, _ := Value[*Object](o, "a")
	assert.Same(t, nested, same)
}

func Test_NilNestedObject(t *testing.T) {
	inner := MustProcess(Declare("Inner").Field("x", Int, 0))
	s := MustProcess(Declare("Outer").Field("in", OptionalOf(ObjectOf(inner)), nil))
	o := s.MustNew()

	require.NoError(t, o.Set("in", (*Object)(nil)))
	v, err := o.Get("in")
	assert.NoError(t, err)
	assert.Nil(t, v)

	encoded, err := (&ObjectEncoder{Schema: inner}).Encode((*Object)(nil))
	assert.NoError(t, err)
	assert.Nil(t, encoded)
}

func Test_ListOfObjects(t *testing.T) {
	item := MustProcess(Declare("Item").Field("k", String))
	s := MustProcess(Declare("Holder").Field("items", OptionalOf(ListOf(ObjectOf(item))), nil))

	o, err := s.New(With("items", []map[string]any{{"k": "1"}, {"k": "2"}}))
	require.NoError(t, err)
	items, err := Value[[]any](o, "items")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for i, expected := range []string{"1", "2"} {
		obj, ok := items[i].(*Object)
		require.True(t, ok)
		assert.True(t, obj.IsInstance(item))
		k, _ := obj.Get("k")
		assert.Equal(t, expected, k)
	}

	require.NoError(t, o.Set("items", nil))
	v, err := o.Get("items")
	assert.NoError(t, err)
	assert.Nil(t, v)

	assert.ErrorIs(t, o.Set("items", "not a list"), ErrValue)
}

func Test_FromList(t *testing.T) {
	s := MustProcess(Declare("Item").Field("k", Int, 0))
	objs, err := s.FromList([]any{map[string]any{"k": 1}, dict.New()})
	require.NoError(t, err)
	require.Len(t, objs, 2)
	k, _ := objs[1].Get("k")
	assert.Equal(t, 0, k)

	_, err = s.FromList([]any{1})
	assert.ErrorIs(t, err, ErrValue)
}

func newIterSchema(opts ...Option) *Schema {
	return MustProcess(Declare("A").
		Field("f1", Int).
		Field("f2", Int).
		Field("f3", Int, F(Readable(false))).
		Field("f4", Int, 4), opts...)
}

func Test_FieldItemsSwallowErrors(t *testing.T) {
	o := newIterSchema().MustNew(With("f1", 1), Extra("x", 0))

	items, err := o.CollectFieldItems()
	assert.NoError(t, err)
	assert.Equal(t, []Item{{"f1", 1}, {"f4", 4}}, items)
}

func Test_FieldItemsSkipAbsent(t *testing.T) {
	s := newIterSchema(IgnoreAbsentOnIter())
	o := s.Wrap(dict.Of(map[string]any{"f1": 1}))

	items, err := o.CollectFieldItems()
	assert.NoError(t, err)
	assert.Equal(t, []Item{{"f1", 1}}, items)
}

func Test_FieldItemsStrict(t *testing.T) {
	o := newIterSchema(WithIterPolicy(IterStrict)).MustNew(With("f1", 1))

	items, err := o.CollectFieldItems()
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, []Item{{"f1", 1}}, items)

	var names []string
	for name := range o.FieldItems() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"f1"}, names)
}

func Test_FieldItemsWithoutIter(t *testing.T) {
	o := newIterSchema(WithoutIter()).MustNew(With("f1", 1), With("f3", 3))

	items, err := o.CollectFieldItems()
	assert.NoError(t, err)
	assert.Equal(t, []Item{{"f1", 1}, {"f3", 3}, {"f4", 4}}, items)
	_, ok := o.Iter(DefaultIterName)
	assert.False(t, ok)
}

func Test_ItemsViews(t *testing.T) {
	o := newIterSchema().MustNew(With("f1", 1), Extra("x", 0))
	assert.Equal(t, []string{"f1", "f4", "x"}, o.Keys())

	o = newIterSchema(WithIterName(ItemsIterName)).MustNew(With("f1", 1), Extra("x", 0))
	assert.Equal(t, []string{"f1", "f4"}, o.Keys())
	assert.Equal(t, []any{1, 4}, o.Values())

	o = newIterSchema(WithItemsFieldOnly()).MustNew(With("f1", 1), Extra("x", 0))
	assert.Equal(t, []string{"f1", "f4"}, o.Keys())
	_, ok := o.Iter(DefaultIterName)
	assert.True(t, ok)
}

func Test_Inheritance(t *testing.T) {
	parent := MustProcess(Declare("Parent").
		Field("p", Int, 3).
		Field("name", String, F(Key("n"))).
		Field("const", StaticOf(String), "parent"))
	child := MustProcess(Declare("Child", parent).
		Field("c", String, "s").
		Field("const", StaticOf(String), "child"))

	o := child.MustNew()
	p, _ := o.Get("p")
	assert.Equal(t, 3, p)
	c, _ := o.Get("c")
	assert.Equal(t, "s", c)
	cst, _ := o.Get("const")
	assert.Equal(t, "child", cst)

	require.NoError(t, o.Set("name", "x"))
	assert.True(t, o.Dict().Has("n"))
	assert.Equal(t, []string{"p", "name", "c"}, child.FieldNames())
	assert.True(t, o.IsInstance(parent))
	assert.False(t, parent.MustNew().IsInstance(child))
}

func Test_InheritedRoleReplaced(t *testing.T) {
	parent := MustProcess(Declare("Parent").
		Field("x", Int, 1).
		Field("y", Int, 2).
		Field("z", Int, 3))
	child := MustProcess(Declare("Child", parent).
		Field("x", StaticOf(Int), 5).
		Field("y", ExcludedOf(Int), 6))

	assert.Equal(t, []string{"z"}, child.FieldNames())
	assert.Equal(t, []string{"x", "y", "z"}, parent.FieldNames())
	_, ok := child.Field("x")
	assert.False(t, ok)

	o := child.MustNew()
	assert.Equal(t, []string{"z"}, o.Dict().Keys())
	x, err := o.Get("x")
	assert.NoError(t, err)
	assert.Equal(t, 5, x)
	y, err := o.Get("y")
	assert.NoError(t, err)
	assert.Equal(t, 6, y)
	assert.NoError(t, o.Delete("z"))
	assert.False(t, o.Dict().Has("z"))
}

func Test_BasesPrecedence(t *testing.T) {
	first := MustProcess(Declare("First").Field("v", Int, 1))
	second := MustProcess(Declare("Second").Field("v", Int, 2).Field("w", Int, 2))
	s := MustProcess(Declare("S", first, nil, second, first))

	assert.Equal(t, []*Schema{first, second}, s.Bases())
	o := s.MustNew()
	v, _ := o.Get("v")
	assert.Equal(t, 1, v)
	w, _ := o.Get("w")
	assert.Equal(t, 2, w)
}

func Test_Reprocess(t *testing.T) {
	decl := Declare("A").Field("a", Int, 1)
	s := MustProcess(decl)

	decl.Field("b", Int, 2)
	again, err := Process(decl)
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Equal(t, []string{"a", "b"}, s.FieldNames())

	decl.Field("c", nil)
	_, err = Process(decl)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, []string{"a", "b"}, s.FieldNames())
}

func Test_Registry(t *testing.T) {
	r := NewRegistry()
	b := MustProcess(Declare("B"), WithRegistry(r))
	a := MustProcess(Declare("A"), WithRegistry(r))

	assert.Equal(t, []*Schema{b, a}, r.All())
	assert.Equal(t, 2, r.Len())
	found, ok := r.Lookup("A")
	assert.True(t, ok)
	assert.Same(t, a, found)
	assert.NoError(t, r.Register(a))

	_, err := Process(Declare("A"), WithRegistry(r))
	assert.ErrorIs(t, err, ErrConfig)
}

func Test_JSON(t *testing.T) {
	inner := MustProcess(Declare("Inner").Field("x", Int, 0))
	s := MustProcess(Declare("Outer").
		Field("name", String, "n").
		Field("inner", ObjectOf(inner), nil))

	o := s.Wrap(nil)
	require.NoError(t, json.Unmarshal([]byte(`{"z":true,"inner":{"y":1}}`), o))

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":true,"inner":{"y":1,"x":0},"name":"n"}`, string(data))
	assert.True(t, strings.HasPrefix(o.String(), "Outer{"))

	assert.ErrorIs(t, json.Unmarshal([]byte(`[1]`), s.Wrap(nil)), ErrValue)
}
