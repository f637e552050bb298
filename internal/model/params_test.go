package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsKeepDocumentOrder(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": "x", "m": [1, 2], "b": null}`), &p))

	assert.Equal(t, []string{"z", "a", "m", "b"}, p.Keys())

	out, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":"x","m":[1,2],"b":null}`, string(out))
}

func TestParamsRejectNonObject(t *testing.T) {
	var p Params
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &p))
}

func TestParamsSetKeepsPosition(t *testing.T) {
	p := NewParams()
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, p.Keys())
	v, ok := p.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestParamsPop(t *testing.T) {
	p := NewParams()
	p.Set("first", "1")
	p.Set("last", "2")

	k, v, ok := p.Pop()
	require.True(t, ok)
	assert.Equal(t, "last", k)
	assert.Equal(t, "2", v)
	_, found := p.Get("last")
	assert.False(t, found)

	p.Pop()
	_, _, ok = p.Pop()
	assert.False(t, ok)
	assert.Zero(t, p.Len())
}

func TestParamsNil(t *testing.T) {
	var p *Params
	assert.Zero(t, p.Len())
	assert.Nil(t, p.Keys())
	_, ok := p.Get("x")
	assert.False(t, ok)
	p.Range(func(string, any) bool {
		t.Fatal("range over nil params")
		return true
	})
	out, err := json.Marshal(struct {
		P *Params `json:"p"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":null}`, string(out))
}

func TestParamsRangeStops(t *testing.T) {
	p := NewParams()
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("c", 3)

	var seen []string
	p.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
