package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObjectPreservesKeyOrder(t *testing.T) {
	got, err := Decode([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`))
	require.NoError(t, err)

	obj, ok := got.(Object)
	require.True(t, ok, "expected Object, got %T", got)
	require.Len(t, obj, 3)
	assert.Equal(t, "zebra", obj[0].Key)
	assert.Equal(t, "apple", obj[1].Key)
	assert.Equal(t, "mango", obj[2].Key)
}

func TestDecodeNestedStructure(t *testing.T) {
	got, err := Decode([]byte(`{"a": 1, "b": [2, 3]}`))
	require.NoError(t, err)

	obj, ok := got.(Object)
	require.True(t, ok)
	require.Len(t, obj, 2)
	assert.Equal(t, 1, obj[0].Value)

	arr, ok := obj[1].Value.([]any)
	require.True(t, ok, "expected []any, got %T", obj[1].Value)
	assert.Equal(t, []any{2, 3}, arr)
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"integer", `42`, 42},
		{"float", `1.5`, 1.5},
		{"string", `"hello"`, "hello"},
		{"bool true", `true`, true},
		{"bool false", `false`, false},
		{"null", `null`, nil},
		{"negative", `-7`, -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing comma", `{"a": 1,}`},
		{"unterminated string", `{"a": "b`},
		{"bare brace", `{`},
		{"unclosed array", `[1, 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode([]byte(""))
	require.Error(t, err)

	_, err = Decode([]byte("   \n  "))
	require.Error(t, err)
}

func TestDecodeEmptyContainers(t *testing.T) {
	got, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	obj, ok := got.(Object)
	require.True(t, ok)
	assert.Empty(t, obj)

	got, err = Decode([]byte(`[]`))
	require.NoError(t, err)
	arr, ok := got.([]any)
	require.True(t, ok)
	assert.Empty(t, arr)
}

func TestDecodeYAMLInput(t *testing.T) {
	input := "first: 1\nsecond:\n  - a\n  - b\n"
	got, err := Decode([]byte(input))
	require.NoError(t, err)

	obj, ok := got.(Object)
	require.True(t, ok)
	require.Len(t, obj, 2)
	assert.Equal(t, "first", obj[0].Key)
	assert.Equal(t, "second", obj[1].Key)
	assert.Equal(t, []any{"a", "b"}, obj[1].Value)
}

func TestDecodeDuplicateKeysKeepBoth(t *testing.T) {
	// Ordered objects can hold duplicates; the tree layer relies on object
	// keys being unique, which real JSON encoders guarantee. The loader
	// itself just reports what the document contains.
	got, err := Decode([]byte("a: 1\na: 2\n"))
	require.NoError(t, err)
	obj, ok := got.(Object)
	require.True(t, ok)
	assert.Len(t, obj, 2)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x": true}`), 0o644))

	got, err := DecodeFile(path)
	require.NoError(t, err)
	obj, ok := got.(Object)
	require.True(t, ok)
	val, present := obj.Get("x")
	assert.True(t, present)
	assert.Equal(t, true, val)

	_, err = DecodeFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestObjectGetMissing(t *testing.T) {
	obj := Object{{Key: "a", Value: 1}}
	_, present := obj.Get("b")
	assert.False(t, present)
}

func TestObjectMarshalJSONOrder(t *testing.T) {
	obj := Object{
		{Key: "z", Value: 1},
		{Key: "a", Value: Object{{Key: "nested", Value: []any{1, 2}}}},
	}
	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"nested":[1,2]}}`, string(data))
}

func TestJSONText(t *testing.T) {
	assert.Equal(t, `42`, JSONText(42))
	assert.Equal(t, `"hello"`, JSONText("hello"))
	assert.Equal(t, `true`, JSONText(true))
	assert.Equal(t, `null`, JSONText(nil))
	assert.Equal(t, `1.5`, JSONText(1.5))
}
