package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Params is a string-keyed mapping that remembers insertion order. Node
// parameters are authored as JSON objects and their order matters for
// global variable forwarding, so both raw and rendered parameters use it.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Len returns the number of entries.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Set stores value under key. Overwriting an existing key keeps its position.
func (p *Params) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Pop removes and returns the most recently inserted entry.
func (p *Params) Pop() (string, any, bool) {
	if p.Len() == 0 {
		return "", nil, false
	}
	last := len(p.keys) - 1
	key := p.keys[last]
	value := p.values[key]
	p.keys = p.keys[:last]
	delete(p.values, key)
	return key, value, true
}

// Range calls fn for each entry in insertion order until fn returns false.
func (p *Params) Range(fn func(key string, value any) bool) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
func (p *Params) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("params: expected JSON object, got %v", tok)
	}

	p.keys = nil
	p.values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("params: expected string key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("params: value for %q: %w", key, err)
		}
		p.Set(key, value)
	}
	_, err = dec.Token()
	return err
}
