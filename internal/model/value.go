package model

import (
	"fmt"
	"strings"
)

// ValueKind tags the shape held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindInteger
	KindBool
	KindList
	KindTuple
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a node parameter value. A List holds scalars or Tuples; a Tuple
// holds scalars only.
type Value struct {
	Kind  ValueKind
	Str   string
	Num   float64
	Int   int64
	Bool  bool
	Items []Value
}

func StringValue(s string) Value      { return Value{Kind: KindString, Str: s} }
func NumberValue(f float64) Value     { return Value{Kind: KindNumber, Num: f} }
func IntegerValue(i int64) Value      { return Value{Kind: KindInteger, Int: i} }
func BoolValue(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func ListValue(items ...Value) Value  { return Value{Kind: KindList, Items: items} }
func TupleValue(items ...Value) Value { return Value{Kind: KindTuple, Items: items} }

// IsScalar reports whether v is neither a List nor a Tuple.
func (v Value) IsScalar() bool {
	return v.Kind != KindList && v.Kind != KindTuple
}

// ParseValue converts a decoded JSON value into a Value. A JSON array at the
// top level is a List; arrays nested inside it are Tuples.
func ParseValue(raw any) (Value, error) {
	return parseValue(raw, 0)
}

func parseValue(raw any, depth int) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case string:
		return StringValue(val), nil
	case float64:
		return NumberValue(val), nil
	case int:
		return IntegerValue(int64(val)), nil
	case int64:
		return IntegerValue(val), nil
	case bool:
		return BoolValue(val), nil
	case []any:
		if depth > 1 {
			return Value{}, fmt.Errorf("arrays nested deeper than tuples are not supported")
		}
		items := make([]Value, 0, len(val))
		for i, item := range val {
			iv, err := parseValue(item, depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, iv)
		}
		if depth == 0 {
			return ListValue(items...), nil
		}
		return TupleValue(items...), nil
	case []string:
		items := make([]Value, 0, len(val))
		for _, s := range val {
			items = append(items, StringValue(s))
		}
		if depth == 0 {
			return ListValue(items...), nil
		}
		return TupleValue(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported parameter value of type %T", raw)
	}
}

// ListShape classifies the elements of a List for rendering.
type ListShape int

const (
	ShapeScalars ListShape = iota
	ShapeKeyValue
	ShapeKeyValueDefault
	ShapeMixed
)

// Shape reports the element shape of a List value. An empty list counts as
// a scalar list.
func (v Value) Shape() ListShape {
	scalars, pairs, triples := 0, 0, 0
	for _, item := range v.Items {
		switch {
		case item.IsScalar():
			scalars++
		case item.Kind == KindTuple && len(item.Items) == 2:
			pairs++
		case item.Kind == KindTuple && len(item.Items) == 3:
			triples++
		}
	}
	n := len(v.Items)
	switch {
	case scalars == n:
		return ShapeScalars
	case pairs == n:
		return ShapeKeyValue
	case triples == n:
		return ShapeKeyValueDefault
	default:
		return ShapeMixed
	}
}

// FieldType is the declared type of a module parameter.
type FieldType string

const (
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldList    FieldType = "list"
	FieldURL     FieldType = "url"
	FieldString  FieldType = "string"
)

// ParseFieldType normalizes a declared type name. Unknown names are returned
// as-is and treated as pass-through by the resolver.
func ParseFieldType(s string) FieldType {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "bool":
		return FieldBoolean
	case "int":
		return FieldInteger
	default:
		return FieldType(t)
	}
}
