package cast_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sieve/internal/cast"
	"github.com/aretw0/sieve/pkg/schema"
)

func TestCast_Number(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  float64
	}{
		{"numeric string", "14", 14},
		{"decimal string", "14.5", 14.5},
		{"true", true, 1},
		{"false", false, 0},
		{"nil (serialized NaN)", nil, 0},
		{"literal NaN", math.NaN(), 0},
		{"int passthrough", 3, 3},
		{"float passthrough", 2.5, 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cast.Cast(tc.value, schema.TypeNumber)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCast_NumberFailure(t *testing.T) {
	// A non-numeric string is a reported cast failure, unlike the silent
	// NaN-to-zero coercion above. The asymmetry is intentional.
	_, err := cast.Cast("hello", schema.TypeNumber)
	assert.ErrorIs(t, err, cast.ErrNotNumber)

	_, err = cast.Cast(map[string]any{}, schema.TypeNumber)
	assert.ErrorIs(t, err, cast.ErrNotNumber)
}

func TestCast_IntegerTruncatesTowardZero(t *testing.T) {
	got, err := cast.Cast("14.7", schema.TypeInteger)
	require.NoError(t, err)
	assert.Equal(t, 14, got)

	got, err = cast.Cast(-14.7, schema.TypeInteger)
	require.NoError(t, err)
	assert.Equal(t, -14, got)

	got, err = cast.Cast(true, schema.TypeInteger)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = cast.Cast("hello", schema.TypeInteger)
	assert.ErrorIs(t, err, cast.ErrNotNumber)
}

func TestCast_BooleanNeverFails(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{"", false},
		{"anything", true},
		{0, false},
		{0.0, false},
		{math.NaN(), false},
		{42, true},
		{map[string]any{}, true},
		{[]any{}, true},
	}

	for _, tc := range cases {
		got, err := cast.Cast(tc.value, schema.TypeBoolean)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "truthiness of %#v", tc.value)
	}
}

func TestCast_StringNeverFails(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{"already", "already"},
		{14.0, "14"},
		{14.5, "14.5"},
		{42, "42"},
		{true, "true"},
		{nil, ""},
	}

	for _, tc := range cases {
		got, err := cast.Cast(tc.value, schema.TypeString)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "stringification of %#v", tc.value)
	}
}

func TestCast_ContainerTargetsAreUntouched(t *testing.T) {
	v := []any{1, 2}
	got, err := cast.Cast(v, schema.TypeArray)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
