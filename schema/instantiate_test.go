package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiate_ByName(t *testing.T) {
	s := requiredPropertiesSchema()

	got, err := Instantiate(s, map[string]any{"requiredName": "x", "extra": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"requiredName": "x", "extra": 1}, got)
}

func TestInstantiate_BySemanticType(t *testing.T) {
	s := requiredPropertiesSchema()

	got, err := Instantiate(s, map[string]any{
		exRequired:                 "x",
		exOptional:                 "y",
		"http://example.org#Other": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"requiredName": "x", "optionalName": "y"}, got)
}

func TestInstantiate_Nested(t *testing.T) {
	s := nestedObjectSchema()

	got, err := Instantiate(s, map[string]any{
		exMainForm:  map[string]int{exHeight: 20, exAge: 2},
		"humanForm": map[string]int{"height": 120, "age": 39},
	})
	require.Error(t, err, "top-level keys mix semantic types and names")
	assert.Nil(t, got)

	got, err = Instantiate(s, map[string]any{
		exMainForm:      map[string]int{exHeight: 20, exAge: 2},
		exSecondaryForm: map[string]int{"height": 120, "age": 39},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"slimeForm": map[string]any{"height": 20, "age": 2},
		"humanForm": map[string]any{"height": 120, "age": 39},
	}, got)
}

func TestInstantiate_Array(t *testing.T) {
	s := NewArraySchema().
		AddItem(NewObjectSchema().
			AddProperty("height", NewIntegerSchema().AddSemanticType(exHeight).Build()).
			MustBuild()).
		Build()

	got, err := Instantiate(s, []map[string]any{{exHeight: 1}, {"height": 2}})
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"height": 1},
		map[string]any{"height": 2},
	}, got)

	tuple := NewArraySchema().
		AddItem(NewStringSchema().Build()).
		AddItem(NewArraySchema().Build()).
		Build()
	got, err = Instantiate(tuple, []any{"a", []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", []any{1, 2}}, got)
}

func TestInstantiate_Scalars(t *testing.T) {
	str := "on"

	got, err := Instantiate(NewStringSchema().Build(), &str)
	require.NoError(t, err)
	assert.Equal(t, "on", got)

	got, err = Instantiate(NewNullSchema().Build(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInstantiate_SchemaWithoutProperties(t *testing.T) {
	got, err := Instantiate(NewObjectSchema().MustBuild(), map[string]string{exHeight: "tall", "name": "Rimuru"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{exHeight: "tall", "name": "Rimuru"}, got)
}

func TestInstantiate_Mismatch(t *testing.T) {
	got, err := Instantiate(NewIntegerSchema().Build(), 1.5)
	require.Error(t, err)
	assert.Nil(t, got)

	var mismatch *MismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestInstantiateMode(t *testing.T) {
	s := requiredPropertiesSchema()

	_, err := InstantiateMode(s, map[string]any{exRequired: "x"}, AddressByName)
	assert.Error(t, err)

	got, err := InstantiateMode(s, map[string]any{exRequired: "x"}, AddressBySemanticType)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"requiredName": "x"}, got)
}
