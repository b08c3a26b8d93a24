// Package descriptor defines the form design schema delivered to the console
// and the parser that turns raw JSON descriptors into typed form models.
package descriptor

import (
	"encoding/json"
)

// InputType discriminates the field kinds a descriptor may declare.
type InputType string

const (
	InputText       InputType = "text"
	InputSelect     InputType = "select"
	InputCheckbox   InputType = "checkbox"
	InputRadio      InputType = "radio"
	InputTable      InputType = "table"
	InputMultiValue InputType = "multivalue"
	InputCurrency   InputType = "currency"
	InputDate       InputType = "date"
	InputLabel      InputType = "label"
	InputChart      InputType = "chart"
	InputButton     InputType = "button"
	InputLayout     InputType = "layout"
	InputView       InputType = "view"

	// InputUnknown marks a descriptor field whose declared type is not
	// recognized. Unknown fields render nothing but stay addressable so a
	// newer backend descriptor does not break older console builds.
	InputUnknown InputType = "unknown"
)

// FormDescriptor is the schema for one console page.
// It is immutable once parsed; only the bound form values change.
type FormDescriptor struct {
	Key        string            `json:"key"`
	WorkflowID string            `json:"workflowid"`
	Lang       map[string]string `json:"lang,omitempty"`
	Layouts    []Layout          `json:"layouts"`
}

// Layout is an ordered section of a page.
type Layout struct {
	Code  string            `json:"code"`
	Lang  map[string]string `json:"lang,omitempty"`
	Views []View            `json:"views"`
}

// View groups an ordered run of inputs. Input codes are unique per view.
type View struct {
	Code   string            `json:"code"`
	Lang   map[string]string `json:"lang,omitempty"`
	Inputs []Input           `json:"inputs"`
}

// Input describes one field. Config holds the decoded type-specific variant;
// RawType preserves the declared type string for unknown kinds.
type Input struct {
	Code    string            `json:"code"`
	Type    InputType         `json:"inputtype"`
	RawType string            `json:"-"`
	Config  InputConfig       `json:"-"`
	Default *DefaultSpec      `json:"default,omitempty"`
	Lang    map[string]string `json:"lang,omitempty"`
	Rules   []Rule            `json:"rule,omitempty"`
}

// Title returns the locale display title for an input, falling back to the
// field code when no translation exists.
func (in *Input) Title(locale string) string {
	if t, ok := in.Lang[locale]; ok && t != "" {
		return t
	}
	return in.Code
}

// DefaultSpec carries the declared initial value for a field.
// Value is a literal; Name references a named default; Condition holds a
// relative expression such as "now+2y" evaluated at initial render.
type DefaultSpec struct {
	Value     any    `json:"value,omitempty"`
	Name      string `json:"name,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// Rule is a single validation rule attached to an input.
type Rule struct {
	Name  string `json:"name"`            // required, format
	Value string `json:"value,omitempty"` // rule argument, e.g. a regexp for format
}

// InputConfig is the marker interface for decoded per-kind config payloads.
type InputConfig interface {
	Kind() InputType
}

// TextConfig configures text inputs.
type TextConfig struct {
	IsPassword  bool   `json:"is_password,omitempty"`
	DataDefault string `json:"data_default,omitempty"`
	MaxLength   int    `json:"max_length,omitempty"`
}

func (TextConfig) Kind() InputType { return InputText }

// Option is one selectable choice of a select or radio input.
type Option struct {
	Value string            `json:"value"`
	Lang  map[string]string `json:"lang,omitempty"`
}

// SelectConfig configures dropdown inputs. When LookupCommand is set the
// options are fetched from the workflow service instead of the static list.
type SelectConfig struct {
	Options       []Option `json:"options,omitempty"`
	LookupCommand string   `json:"lookup_command,omitempty"`
	Multiple      bool     `json:"multiple,omitempty"`
}

func (SelectConfig) Kind() InputType { return InputSelect }

// CheckboxConfig configures checkbox inputs.
type CheckboxConfig struct {
	CheckedValue   string `json:"checked_value,omitempty"`
	UncheckedValue string `json:"unchecked_value,omitempty"`
}

func (CheckboxConfig) Kind() InputType { return InputCheckbox }

// RadioConfig configures radio groups.
type RadioConfig struct {
	Options []Option `json:"options"`
}

func (RadioConfig) Kind() InputType { return InputRadio }

// Column is one column of a table input.
type Column struct {
	Key   string            `json:"key"`
	Lang  map[string]string `json:"lang,omitempty"`
	Fixed string            `json:"fixed,omitempty"` // left | right
}

// TableConfig configures table-picker and search-result inputs.
// IdentityField keys row selection; rows may reorder across pages, so
// selection is never keyed by index.
type TableConfig struct {
	Columns       []Column `json:"columns"`
	IdentityField string   `json:"identity_field"`
	Command       string   `json:"command,omitempty"`
	PageSize      int      `json:"pagesize,omitempty"`
	LoadAll       bool     `json:"load_all,omitempty"`
}

func (TableConfig) Kind() InputType { return InputTable }

// MultiValueConfig configures delimiter-joined multi-value inputs.
type MultiValueConfig struct {
	Delimiter string `json:"delimiter,omitempty"`
	MaxItems  int    `json:"max_items,omitempty"`
}

func (MultiValueConfig) Kind() InputType { return InputMultiValue }

// CurrencyConfig configures currency-amount inputs.
type CurrencyConfig struct {
	CurrencyCode string `json:"currency_code,omitempty"`
	Precision    int    `json:"precision,omitempty"`
}

func (CurrencyConfig) Kind() InputType { return InputCurrency }

// DateConfig configures date inputs. Format uses Go reference layout.
type DateConfig struct {
	Format string `json:"format,omitempty"`
}

func (DateConfig) Kind() InputType { return InputDate }

// LabelConfig configures static label fields.
type LabelConfig struct {
	Text string `json:"text,omitempty"`
}

func (LabelConfig) Kind() InputType { return InputLabel }

// ChartConfig configures chart placeholders.
type ChartConfig struct {
	ChartType string `json:"chart_type,omitempty"`
	Command   string `json:"command,omitempty"`
}

func (ChartConfig) Kind() InputType { return InputChart }

// ButtonConfig binds a button to a server transaction code.
type ButtonConfig struct {
	TxCode  string `json:"txcode"`
	Confirm bool   `json:"confirm,omitempty"`
}

func (ButtonConfig) Kind() InputType { return InputButton }

// ContainerConfig covers nested layout/view inputs; children are parsed
// recursively with the same rules as top-level inputs.
type ContainerConfig struct {
	kind     InputType
	Children []Input `json:"children,omitempty"`
}

func (c ContainerConfig) Kind() InputType { return c.kind }

// UnknownConfig preserves the raw config of an unrecognized input type.
type UnknownConfig struct {
	Raw json.RawMessage
}

func (UnknownConfig) Kind() InputType { return InputUnknown }
