package topology

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"topology-builder/internal/model"
	"topology-builder/pkg/utils"
)

var templatePattern = regexp.MustCompile(`^\[\$(.+)\]$`)

// TemplateKey returns the variable a "[$key]" template refers to.
func TemplateKey(s string) (string, bool) {
	m := templatePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ResolveParam resolves a raw parameter value of node against vars. A nil
// vars map disables templating. Only templated strings are coerced to the
// declared field type; other scalars are returned unchanged.
func (b *Builder) ResolveParam(ctx context.Context, node *model.Node, param string, raw model.Value, vars map[string]any) (model.Value, error) {
	if vars == nil {
		return raw, nil
	}

	switch raw.Kind {
	case model.KindList:
		items := make([]model.Value, 0, len(raw.Items))
		for _, item := range raw.Items {
			v, err := b.ResolveParam(ctx, node, param, item, vars)
			if err != nil {
				return model.Value{}, err
			}
			if v.Kind == model.KindList {
				items = append(items, v.Items...)
			} else {
				items = append(items, v)
			}
		}
		return model.ListValue(items...), nil

	case model.KindTuple:
		items := make([]model.Value, 0, len(raw.Items))
		for _, item := range raw.Items {
			v, err := b.ResolveParam(ctx, node, param, item, vars)
			if err != nil {
				return model.Value{}, err
			}
			if v.Kind == model.KindList {
				// a tuple slot holds one scalar
				v = model.StringValue(joinList(v))
			}
			items = append(items, v)
		}
		return model.TupleValue(items...), nil

	case model.KindString:
		key, ok := TemplateKey(raw.Str)
		if !ok {
			return raw, nil
		}
		return b.substitute(ctx, node, param, key, vars)

	default:
		return raw, nil
	}
}

func (b *Builder) substitute(ctx context.Context, node *model.Node, param, key string, vars map[string]any) (model.Value, error) {
	rawVar, ok := vars[key]
	if !ok {
		return model.Value{}, &TemplateResolutionError{Node: node.Name, Param: param, Key: key}
	}
	value, err := model.ParseValue(rawVar)
	if err != nil {
		return model.Value{}, &TypeCoercionError{Node: node.Name, Param: param, Value: rawVar, Err: err}
	}

	schema, err := b.fields.Resolve(ctx, node.ModuleVersionID)
	if err != nil {
		return model.Value{}, err
	}
	field, declared := schema[param]
	if !declared {
		return value, nil
	}

	coerced, err := Coerce(field.Type, value)
	if err != nil {
		return model.Value{}, &TypeCoercionError{Node: node.Name, Param: param, Type: field.Type, Value: rawVar, Err: err}
	}
	return coerced, nil
}

// Coerce converts a substituted value to the declared field type. url,
// string and unknown types pass the value through.
func Coerce(t model.FieldType, v model.Value) (model.Value, error) {
	switch t {
	case model.FieldNumber:
		n, err := toNumber(v)
		if err != nil {
			return model.Value{}, err
		}
		f, _ := n.Float64()
		return model.NumberValue(f), nil

	case model.FieldInteger:
		n, err := toNumber(v)
		if err != nil {
			return model.Value{}, err
		}
		if !n.IsInt() {
			return model.Value{}, fmt.Errorf("%s is not a whole number", n.Text('f', -1))
		}
		i, acc := n.Int64()
		if acc != big.Exact {
			return model.Value{}, fmt.Errorf("%s overflows a 64-bit integer", n.Text('f', -1))
		}
		return model.IntegerValue(i), nil

	case model.FieldBoolean:
		if v.Kind == model.KindBool {
			return v, nil
		}
		switch v.Kind {
		case model.KindNull:
			return model.BoolValue(false), nil
		case model.KindString:
			// any non-empty text is true, "false" and "0" included
			return model.BoolValue(v.Str != ""), nil
		case model.KindNumber:
			return model.BoolValue(v.Num != 0), nil
		case model.KindInteger:
			return model.BoolValue(v.Int != 0), nil
		default:
			return model.Value{}, fmt.Errorf("cannot use a %s as a boolean", v.Kind)
		}

	case model.FieldList:
		if v.Kind == model.KindList {
			items := make([]model.Value, 0, len(v.Items))
			for _, item := range v.Items {
				items = append(items, model.StringValue(scalarString(item)))
			}
			return model.ListValue(items...), nil
		}
		parts := strings.Split(scalarString(v), ",")
		items := make([]model.Value, 0, len(parts))
		for _, p := range parts {
			items = append(items, model.StringValue(p))
		}
		return model.ListValue(items...), nil

	default:
		return v, nil
	}
}

func toNumber(v model.Value) (*big.Float, error) {
	switch v.Kind {
	case model.KindNumber:
		return big.NewFloat(v.Num), nil
	case model.KindInteger:
		return new(big.Float).SetInt64(v.Int), nil
	case model.KindString:
		n, err := convert.Convert(cty.StringVal(strings.TrimSpace(v.Str)), cty.Number)
		if err != nil {
			return nil, err
		}
		return n.AsBigFloat(), nil
	default:
		return nil, errors.New("cannot use a " + v.Kind.String() + " as a number")
	}
}

func scalarString(v model.Value) string {
	switch v.Kind {
	case model.KindNull:
		return utils.Stringify(nil)
	case model.KindString:
		return v.Str
	case model.KindNumber:
		return utils.Stringify(v.Num)
	case model.KindInteger:
		return utils.Stringify(v.Int)
	case model.KindBool:
		return utils.Stringify(v.Bool)
	default:
		return joinList(v)
	}
}

func joinList(v model.Value) string {
	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		parts = append(parts, scalarString(item))
	}
	return strings.Join(parts, ",")
}
