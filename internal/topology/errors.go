package topology

import (
	"fmt"
	"strings"

	"topology-builder/internal/model"
)

// PropertyValidationError reports a topology property that cannot be
// normalized.
type PropertyValidationError struct {
	Key   string
	Value any
	Err   error
}

func (e *PropertyValidationError) Error() string {
	return fmt.Sprintf("invalid topology property %q (%v): %v", e.Key, e.Value, e.Err)
}

func (e *PropertyValidationError) Unwrap() error { return e.Err }

// SchemaLookupError reports a module version schema the store could not
// provide.
type SchemaLookupError struct {
	VersionID string
	Err       error
}

func (e *SchemaLookupError) Error() string {
	return fmt.Sprintf("cannot resolve schema for module version %q: %v", e.VersionID, e.Err)
}

func (e *SchemaLookupError) Unwrap() error { return e.Err }

// TemplateResolutionError reports a template reference to a variable the
// topology does not define.
type TemplateResolutionError struct {
	Node  string
	Param string
	Key   string
}

func (e *TemplateResolutionError) Error() string {
	return fmt.Sprintf("node %q param %q references undefined variable %q", e.Node, e.Param, e.Key)
}

// TypeCoercionError reports a substituted value that does not fit the
// declared field type.
type TypeCoercionError struct {
	Node  string
	Param string
	Type  model.FieldType
	Value any
	Err   error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("node %q param %q: cannot use %v as %s: %v", e.Node, e.Param, e.Value, e.Type, e.Err)
}

func (e *TypeCoercionError) Unwrap() error { return e.Err }

// StructuralError is returned in strict mode when any element failed
// structural validation.
type StructuralError struct {
	Diagnostics []model.Diagnostic
}

func (e *StructuralError) Error() string {
	msgs := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.Error())
	}
	return "structural validation failed: " + strings.Join(msgs, "; ")
}
