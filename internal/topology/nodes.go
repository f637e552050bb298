package topology

import (
	"context"
	"fmt"
	"strings"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/pkg/utils"
)

type languageSpec struct {
	interpreted bool
	scriptExt   string
}

var languages = map[string]languageSpec{
	"python": {interpreted: true, scriptExt: ".py"},
	"java":   {interpreted: false},
}

// Placeholders a parameter holds while it waits for a forwarded value.
const (
	PlaceholderWired = "[wired]"
	PlaceholderNone  = "None"
)

// Materialize builds the component for the node at position index. It
// returns nil, without error, when the node fails structural validation;
// the problem is recorded as a diagnostic.
func (b *Builder) Materialize(ctx context.Context, index int, node *model.Node, vars map[string]any) (*model.Component, error) {
	if missing := missingNodeFields(node); len(missing) > 0 {
		b.report("node", index, node.Name, "missing required fields: "+strings.Join(missing, ", "))
		return nil, nil
	}
	role, ok := model.ParseRole(node.Type)
	if !ok {
		b.report("node", index, node.Name, fmt.Sprintf("unknown node type %q", node.Type))
		return nil, nil
	}

	c := &model.Component{
		Role:          role,
		Language:      node.Language,
		AbstractionID: node.Name + "_" + b.opts.NewID(),
		Parallelism:   "1",
		Sources:       []model.Source{},
		Params:        model.NewParams(),
	}
	if node.Parallelism != nil {
		c.Parallelism = utils.Stringify(node.Parallelism)
	}

	lang, known := languages[strings.ToLower(node.Language)]
	switch {
	case !known:
		b.report("node", index, node.Name, fmt.Sprintf("unsupported language %q; no runtime class assigned", node.Language))
	case lang.interpreted:
		kind := role.RuntimeKind()
		c.Class = fmt.Sprintf("%s.%ss.%s%sWrapper", b.opts.ClassNamespace, kind, title(strings.ToLower(node.Language)), title(kind))
		c.Script = strings.ToLower(node.Name) + lang.scriptExt
	default:
		c.Class = fmt.Sprintf("%s.%ss.%s", b.opts.ClassNamespace, role.RuntimeKind(), node.Name)
	}

	var resolveErr error
	node.Params.Range(func(key string, rawValue any) bool {
		raw, err := model.ParseValue(rawValue)
		if err != nil {
			b.report("param", index, node.Name+"."+key, err.Error())
			return true
		}
		value, err := b.ResolveParam(ctx, node, key, raw, vars)
		if err != nil {
			resolveErr = err
			return false
		}
		rendered, err := Render(value)
		if err != nil {
			b.report("param", index, node.Name+"."+key, err.Error())
			return true
		}
		c.Params.Set(key, rendered)
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}

	ctxlog.FromContext(ctx).Debug("Node materialized.",
		"index", index,
		"name", node.Name,
		"role", role,
		"abstraction_id", c.AbstractionID,
		"params", c.Params.Len(),
	)
	return c, nil
}

func missingNodeFields(node *model.Node) []string {
	var missing []string
	if node.Type == "" {
		missing = append(missing, "type")
	}
	if node.Language == "" {
		missing = append(missing, "language")
	}
	if node.Name == "" {
		missing = append(missing, "name")
	}
	if node.Params == nil {
		missing = append(missing, "params")
	}
	return missing
}

// Render converts a resolved value to the form stored in a descriptor:
// scalars become strings, scalar lists become []string, 2-tuple lists
// become single-key maps and 3-tuple lists become maps with a "default" key.
func Render(v model.Value) (any, error) {
	switch v.Kind {
	case model.KindList:
		switch v.Shape() {
		case model.ShapeScalars:
			out := make([]string, 0, len(v.Items))
			for _, item := range v.Items {
				out = append(out, scalarString(item))
			}
			return out, nil
		case model.ShapeKeyValue:
			out := make([]map[string]string, 0, len(v.Items))
			for _, item := range v.Items {
				out = append(out, map[string]string{
					scalarString(item.Items[0]): scalarString(item.Items[1]),
				})
			}
			return out, nil
		case model.ShapeKeyValueDefault:
			out := make([]map[string]string, 0, len(v.Items))
			for _, item := range v.Items {
				out = append(out, map[string]string{
					scalarString(item.Items[0]): scalarString(item.Items[1]),
					"default":                   scalarString(item.Items[2]),
				})
			}
			return out, nil
		default:
			return nil, fmt.Errorf("list mixes scalars and tuples of different sizes")
		}
	case model.KindTuple:
		return nil, fmt.Errorf("tuple outside of a list")
	default:
		return scalarString(v), nil
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
