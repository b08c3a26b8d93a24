// Package form implements the orchestrator for one console page: it owns
// the bound form values, the submit state machine, required-field
// validation and the rendering of descriptors into control view models.
package form

import (
	"time"

	"corebo/console/internal/descriptor"
)

// Values maps field codes to their current bound values. Owned exclusively
// by one Session for the lifetime of a page; values are plain
// JSON-serializable data so they can be embedded in a TxFo unchanged.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// ToTxFoInput converts the values into a workflow request input map.
// Defaults the user never touched pass through unchanged.
func (v Values) ToTxFoInput() map[string]any {
	return map[string]any(v.Clone())
}

// valueBearing reports whether an input kind binds a form value.
func valueBearing(t descriptor.InputType) bool {
	switch t {
	case descriptor.InputButton, descriptor.InputLabel, descriptor.InputChart,
		descriptor.InputLayout, descriptor.InputView, descriptor.InputUnknown:
		return false
	}
	return true
}

// InitialValues walks the descriptor and evaluates every field default
// once, against the supplied clock. Container children are included.
func InitialValues(desc *descriptor.FormDescriptor, now time.Time) Values {
	values := make(Values)
	WalkInputs(desc, func(in *descriptor.Input) {
		if !valueBearing(in.Type) {
			return
		}
		if def := descriptor.EvalDefault(in, now); def != nil {
			values[in.Code] = def
		}
	})
	return values
}

// WalkInputs visits every input of the descriptor in rendering order,
// descending into layout/view containers.
func WalkInputs(desc *descriptor.FormDescriptor, visit func(*descriptor.Input)) {
	var walk func(inputs []descriptor.Input)
	walk = func(inputs []descriptor.Input) {
		for i := range inputs {
			in := &inputs[i]
			visit(in)
			if cfg, ok := in.Config.(descriptor.ContainerConfig); ok {
				walk(cfg.Children)
			}
		}
	}
	for _, layout := range desc.Layouts {
		for _, view := range layout.Views {
			walk(view.Inputs)
		}
	}
}

// isEmptyValue reports whether a bound value fails a required rule.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
