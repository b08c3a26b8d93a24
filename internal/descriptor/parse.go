package descriptor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"corebo/console/internal/utils"
)

// ParseError is a single descriptor ingestion error with a field path.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ParseErrors collects all ingestion errors for one descriptor.
type ParseErrors []ParseError

func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("descriptor validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if any error was recorded.
func (e ParseErrors) HasErrors() bool {
	return len(e) > 0
}

// Raw wire shapes. Config stays opaque until the input type is known.
type rawDescriptor struct {
	Key        string            `json:"key"`
	WorkflowID string            `json:"workflowid"`
	Lang       map[string]string `json:"lang"`
	Layouts    []rawLayout       `json:"layouts"`
}

type rawLayout struct {
	Code  string            `json:"code"`
	Lang  map[string]string `json:"lang"`
	Views []rawView         `json:"views"`
}

type rawView struct {
	Code   string            `json:"code"`
	Lang   map[string]string `json:"lang"`
	Inputs []rawInput        `json:"inputs"`
}

type rawInput struct {
	Code     string            `json:"code"`
	Type     string            `json:"inputtype"`
	Config   json.RawMessage   `json:"config"`
	Default  *DefaultSpec      `json:"default"`
	Lang     map[string]string `json:"lang"`
	Rules    []Rule            `json:"rule"`
	Children []rawInput        `json:"children"`
}

// parser walks a raw descriptor and accumulates errors instead of stopping
// at the first problem, so a malformed design reports everything at once.
type parser struct {
	errors ParseErrors
}

// Parse decodes and validates a raw JSON form descriptor. Malformed
// per-kind config is rejected here, at ingestion time, rather than deep
// inside a renderer.
func Parse(data []byte) (*FormDescriptor, error) {
	var raw rawDescriptor
	if err := utils.FromJSONBytes(data, &raw); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}

	p := &parser{}
	desc := p.descriptor(&raw)
	if p.errors.HasErrors() {
		return nil, p.errors
	}
	return desc, nil
}

func (p *parser) addError(path, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) descriptor(raw *rawDescriptor) *FormDescriptor {
	if raw.Key == "" {
		p.addError("key", "descriptor key is required")
	}
	if raw.WorkflowID == "" {
		p.addError("workflowid", "workflow id is required")
	}
	if len(raw.Layouts) == 0 {
		p.addError("layouts", "at least one layout is required")
	}

	desc := &FormDescriptor{
		Key:        raw.Key,
		WorkflowID: raw.WorkflowID,
		Lang:       raw.Lang,
		Layouts:    make([]Layout, 0, len(raw.Layouts)),
	}
	for i, rl := range raw.Layouts {
		desc.Layouts = append(desc.Layouts, p.layout(fmt.Sprintf("layouts[%d]", i), &rl))
	}
	return desc
}

func (p *parser) layout(path string, raw *rawLayout) Layout {
	l := Layout{
		Code:  raw.Code,
		Lang:  raw.Lang,
		Views: make([]View, 0, len(raw.Views)),
	}
	for i, rv := range raw.Views {
		l.Views = append(l.Views, p.view(fmt.Sprintf("%s.views[%d]", path, i), &rv))
	}
	return l
}

func (p *parser) view(path string, raw *rawView) View {
	v := View{
		Code:   raw.Code,
		Lang:   raw.Lang,
		Inputs: make([]Input, 0, len(raw.Inputs)),
	}
	seen := make(map[string]bool, len(raw.Inputs))
	for i, ri := range raw.Inputs {
		inputPath := fmt.Sprintf("%s.inputs[%d]", path, i)
		if ri.Code == "" {
			p.addError(inputPath+".code", "input code is required")
		} else if seen[ri.Code] {
			p.addError(inputPath+".code", "duplicate input code %q within view", ri.Code)
		}
		seen[ri.Code] = true
		v.Inputs = append(v.Inputs, p.input(inputPath, &ri))
	}
	return v
}

func (p *parser) input(path string, raw *rawInput) Input {
	in := Input{
		Code:    raw.Code,
		RawType: raw.Type,
		Default: raw.Default,
		Lang:    raw.Lang,
		Rules:   raw.Rules,
	}
	for i, r := range raw.Rules {
		if r.Name != RuleFormat || r.Value == "" {
			continue
		}
		if _, err := regexp.Compile(r.Value); err != nil {
			p.addError(fmt.Sprintf("%s.rule[%d].value", path, i), "invalid format pattern %q: %v", r.Value, err)
		}
	}
	in.Type, in.Config = p.config(path, raw)
	return in
}

// config decodes the type-specific config bag into its typed variant.
func (p *parser) config(path string, raw *rawInput) (InputType, InputConfig) {
	decode := func(dst any) bool {
		if len(raw.Config) == 0 {
			return true
		}
		if err := utils.FromJSONBytes(raw.Config, dst); err != nil {
			p.addError(path+".config", "invalid %s config: %v", raw.Type, err)
			return false
		}
		return true
	}

	switch InputType(raw.Type) {
	case InputText:
		var cfg TextConfig
		decode(&cfg)
		return InputText, cfg
	case InputSelect:
		var cfg SelectConfig
		if decode(&cfg) && len(cfg.Options) == 0 && cfg.LookupCommand == "" {
			p.addError(path+".config", "select input needs options or a lookup_command")
		}
		return InputSelect, cfg
	case InputCheckbox:
		var cfg CheckboxConfig
		decode(&cfg)
		return InputCheckbox, cfg
	case InputRadio:
		var cfg RadioConfig
		if decode(&cfg) && len(cfg.Options) == 0 {
			p.addError(path+".config", "radio input needs at least one option")
		}
		return InputRadio, cfg
	case InputTable:
		var cfg TableConfig
		if decode(&cfg) {
			if len(cfg.Columns) == 0 {
				p.addError(path+".config.columns", "table input needs at least one column")
			}
			if cfg.IdentityField == "" {
				p.addError(path+".config.identity_field", "table input needs an identity field for row selection")
			}
			if cfg.PageSize < 0 {
				p.addError(path+".config.pagesize", "pagesize must be non-negative")
			}
		}
		return InputTable, cfg
	case InputMultiValue:
		var cfg MultiValueConfig
		decode(&cfg)
		if cfg.Delimiter == "" {
			cfg.Delimiter = ","
		}
		return InputMultiValue, cfg
	case InputCurrency:
		var cfg CurrencyConfig
		if decode(&cfg) && cfg.Precision < 0 {
			p.addError(path+".config.precision", "precision must be non-negative")
		}
		return InputCurrency, cfg
	case InputDate:
		var cfg DateConfig
		decode(&cfg)
		if cfg.Format == "" {
			cfg.Format = "2006-01-02"
		}
		return InputDate, cfg
	case InputLabel:
		var cfg LabelConfig
		decode(&cfg)
		return InputLabel, cfg
	case InputChart:
		var cfg ChartConfig
		decode(&cfg)
		return InputChart, cfg
	case InputButton:
		var cfg ButtonConfig
		if decode(&cfg) && cfg.TxCode == "" {
			p.addError(path+".config.txcode", "button input needs a txcode")
		}
		return InputButton, cfg
	case InputLayout, InputView:
		cfg := ContainerConfig{kind: InputType(raw.Type)}
		for i, child := range raw.Children {
			cfg.Children = append(cfg.Children, p.input(fmt.Sprintf("%s.children[%d]", path, i), &child))
		}
		return InputType(raw.Type), cfg
	default:
		// Unknown input kinds are kept as a typed variant so the renderer
		// can skip them deliberately instead of failing silently.
		return InputUnknown, UnknownConfig{Raw: raw.Config}
	}
}
