package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/socperf/internal/model"
)

func TestMarshalCanonical_Basic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"int", 42, "42"},
		{"integral float", 64000.0, "64000"},
		{"fraction", 41.7, "41.7"},
		{"bool", true, "true"},
		{"null", nil, "null"},
		{"empty array", []int{}, "[]"},
		{"empty object", map[string]int{}, "{}"},
		{"unresolved number", model.Unresolved(), "null"},
		{"known number", model.Known(128), "128"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	result, err := MarshalCanonical(map[string]any{
		"zebra": 1,
		"alpha": map[string]int{"b": 1, "a": 2},
		"beta":  3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonical_StructTags(t *testing.T) {
	ref := model.NodeRef{ID: "noc", Label: "Interconnect"}

	result, err := MarshalCanonical(ref)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"noc","label":"Interconnect"}`, string(result))
}

func TestMarshalCanonical_NoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical("a<b>&c")
	require.NoError(t, err)
	assert.Equal(t, `"a<b>&c"`, string(result))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// e + combining acute accent normalizes to U+00E9.
	result, err := MarshalCanonical("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"caf\u00e9\"", string(result))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+FF61 sorts after U+1F600 in UTF-8 but before it in UTF-16.
	result, err := MarshalCanonical(map[string]int{"\U0001F600": 1, "｡": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":1,\"｡\":2}", string(result))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	v := map[string]any{"b": []any{1, "x", 2.5}, "a": map[string]any{"z": nil, "y": false}}

	first, err := MarshalCanonical(v)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := MarshalCanonical(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarshalIndent(t *testing.T) {
	result, err := MarshalIndent(map[string]int{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}\n", string(result))
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]int{"x": 1, "y": 2})
	require.NoError(t, err)
	b, err := Fingerprint(map[string]int{"y": 2, "x": 1})
	require.NoError(t, err)
	c, err := Fingerprint(map[string]int{"x": 2, "y": 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, a)
}
