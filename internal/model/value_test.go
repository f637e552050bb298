package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"null", nil, Value{Kind: KindNull}},
		{"string", "s", StringValue("s")},
		{"number", 4.5, NumberValue(4.5)},
		{"int", 3, IntegerValue(3)},
		{"bool", true, BoolValue(true)},
		{"list", []any{"a", 1.0}, ListValue(StringValue("a"), NumberValue(1))},
		{
			"list of tuples",
			[]any{[]any{"k", "v"}},
			ListValue(TupleValue(StringValue("k"), StringValue("v"))),
		},
		{"string slice", []string{"a"}, ListValue(StringValue("a"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValueRejects(t *testing.T) {
	for name, in := range map[string]any{
		"object":       map[string]any{"a": 1},
		"deep nesting": []any{[]any{[]any{"x"}}},
		"object item":  []any{map[string]any{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseValue(in)
			assert.Error(t, err)
		})
	}
}

func TestShape(t *testing.T) {
	pair := TupleValue(StringValue("k"), StringValue("v"))
	triple := TupleValue(StringValue("k"), StringValue("v"), StringValue("d"))

	assert.Equal(t, ShapeScalars, ListValue().Shape())
	assert.Equal(t, ShapeScalars, ListValue(StringValue("a"), BoolValue(true)).Shape())
	assert.Equal(t, ShapeKeyValue, ListValue(pair, pair).Shape())
	assert.Equal(t, ShapeKeyValueDefault, ListValue(triple).Shape())
	assert.Equal(t, ShapeMixed, ListValue(pair, triple).Shape())
	assert.Equal(t, ShapeMixed, ListValue(StringValue("a"), pair).Shape())
	assert.Equal(t, ShapeMixed, ListValue(TupleValue(StringValue("solo"))).Shape())
}

func TestParseFieldType(t *testing.T) {
	assert.Equal(t, FieldBoolean, ParseFieldType("bool"))
	assert.Equal(t, FieldBoolean, ParseFieldType("Boolean"))
	assert.Equal(t, FieldInteger, ParseFieldType(" int "))
	assert.Equal(t, FieldURL, ParseFieldType("url"))
	assert.Equal(t, FieldType("custom"), ParseFieldType("custom"))
}

func TestParseRole(t *testing.T) {
	for kind, want := range map[string]Role{
		"spout":    RoleIngress,
		"Bolt":     RoleProcessing,
		"operator": RoleProcessing,
		"drain":    RoleEgress,
	} {
		got, ok := ParseRole(kind)
		assert.True(t, ok, kind)
		assert.Equal(t, want, got, kind)
	}
	_, ok := ParseRole("sink")
	assert.False(t, ok)
	assert.Equal(t, "bolt", RoleProcessing.RuntimeKind())
}
