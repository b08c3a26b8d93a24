package form

import (
	"go.uber.org/zap"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/logger"
	"corebo/console/internal/table"
)

// PageModel is the fully resolved view model for one page render. The
// descriptor stays immutable; everything role- or locale-specific is
// resolved here.
type PageModel struct {
	Key        string        `json:"key"`
	WorkflowID string        `json:"workflowid"`
	Title      string        `json:"title"`
	SessionID  string        `json:"session_id"`
	Layouts    []LayoutModel `json:"layouts"`
}

// LayoutModel is one rendered page section.
type LayoutModel struct {
	Code  string      `json:"code"`
	Title string      `json:"title,omitempty"`
	Views []ViewModel `json:"views"`
}

// ViewModel is one rendered input group.
type ViewModel struct {
	Code     string    `json:"code"`
	Title    string    `json:"title,omitempty"`
	Controls []Control `json:"controls"`
}

// OptionModel is one resolved choice of a select or radio control.
type OptionModel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ColumnModel is one resolved table column.
type ColumnModel struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Fixed string `json:"fixed,omitempty"`
}

// Control is the concrete view model for one field. Type is the control
// kind the front end instantiates; Value is the current bound value.
type Control struct {
	Code     string `json:"code"`
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	Required bool   `json:"required,omitempty"`
	Value    any    `json:"value,omitempty"`

	// Type-specific presentation, populated per control kind.
	Options       []OptionModel `json:"options,omitempty"`
	Multiple      bool          `json:"multiple,omitempty"`
	Columns       []ColumnModel `json:"columns,omitempty"`
	IdentityField string        `json:"identity_field,omitempty"`
	PageSize      int           `json:"pagesize,omitempty"`
	Expanded      bool          `json:"expanded,omitempty"`
	Format        string        `json:"format,omitempty"`
	CurrencyCode  string        `json:"currency_code,omitempty"`
	Precision     int           `json:"precision,omitempty"`
	MaxLength     int           `json:"max_length,omitempty"`
	Text          string        `json:"text,omitempty"`
	ChartType     string        `json:"chart_type,omitempty"`
	TxCode        string        `json:"txcode,omitempty"`
	Confirm       bool          `json:"confirm,omitempty"`
	Children      []Control     `json:"children,omitempty"`
}

// Render resolves the session's descriptor into a page model for the
// locale and role overlay. Hidden inputs are omitted entirely; unknown
// input kinds are skipped with a diagnosable log line.
func (s *Session) Render() *PageModel {
	s.mu.Lock()
	values := s.values.Clone()
	rt := s.roleTask
	s.mu.Unlock()

	desc := s.Descriptor
	page := &PageModel{
		Key:        desc.Key,
		WorkflowID: desc.WorkflowID,
		Title:      langTitle(desc.Lang, s.locale, desc.Key),
		SessionID:  s.ID,
	}

	for _, layout := range desc.Layouts {
		lm := LayoutModel{
			Code:  layout.Code,
			Title: langTitle(layout.Lang, s.locale, ""),
		}
		for _, view := range layout.Views {
			vm := ViewModel{
				Code:  view.Code,
				Title: langTitle(view.Lang, s.locale, ""),
			}
			vm.Controls = s.renderInputs(view.Inputs, values, rt)
			lm.Views = append(lm.Views, vm)
		}
		page.Layouts = append(page.Layouts, lm)
	}
	return page
}

func (s *Session) renderInputs(inputs []descriptor.Input, values Values, rt *RoleTask) []Control {
	controls := make([]Control, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		if rt.IsHidden(in.Code) {
			continue
		}
		if ctrl, ok := s.renderInput(in, values, rt); ok {
			controls = append(controls, ctrl)
		}
	}
	return controls
}

// renderInput maps one input descriptor to its concrete control. This is
// the field-renderer dispatch over the closed inputtype set.
func (s *Session) renderInput(in *descriptor.Input, values Values, rt *RoleTask) (Control, bool) {
	ctrl := Control{
		Code:     in.Code,
		Title:    in.Title(s.locale),
		Required: descriptor.IsFieldRequired(in),
		Value:    values[in.Code],
	}

	switch cfg := in.Config.(type) {
	case descriptor.TextConfig:
		ctrl.Type = "text"
		if cfg.IsPassword {
			ctrl.Type = "password"
			ctrl.Value = nil // never echo password values back
		}
		ctrl.MaxLength = cfg.MaxLength
	case descriptor.SelectConfig:
		ctrl.Type = "select"
		ctrl.Multiple = cfg.Multiple
		ctrl.Options = s.renderOptions(cfg.Options)
	case descriptor.CheckboxConfig:
		ctrl.Type = "checkbox"
	case descriptor.RadioConfig:
		ctrl.Type = "radio"
		ctrl.Options = s.renderOptions(cfg.Options)
	case descriptor.TableConfig:
		ctrl.Type = "table"
		ctrl.IdentityField = cfg.IdentityField
		ctrl.PageSize = cfg.PageSize
		ctrl.Expanded = table.DefaultSearchStore.IsExpanded(s.ID + ":" + in.Code)
		for _, col := range cfg.Columns {
			ctrl.Columns = append(ctrl.Columns, ColumnModel{
				Key:   col.Key,
				Title: langTitle(col.Lang, s.locale, col.Key),
				Fixed: col.Fixed,
			})
		}
	case descriptor.MultiValueConfig:
		ctrl.Type = "multivalue"
	case descriptor.CurrencyConfig:
		ctrl.Type = "currency"
		ctrl.CurrencyCode = cfg.CurrencyCode
		ctrl.Precision = cfg.Precision
	case descriptor.DateConfig:
		ctrl.Type = "date"
		ctrl.Format = cfg.Format
	case descriptor.LabelConfig:
		ctrl.Type = "label"
		ctrl.Text = cfg.Text
	case descriptor.ChartConfig:
		ctrl.Type = "chart"
		ctrl.ChartType = cfg.ChartType
	case descriptor.ButtonConfig:
		ctrl.Type = "button"
		ctrl.TxCode = cfg.TxCode
		ctrl.Confirm = cfg.Confirm
	case descriptor.ContainerConfig:
		ctrl.Type = string(in.Type)
		ctrl.Children = s.renderInputs(cfg.Children, values, rt)
	default:
		logger.Warn("unsupported field type skipped",
			zap.String("form", s.Descriptor.Key),
			zap.String("code", in.Code),
			zap.String("inputtype", in.RawType))
		return Control{}, false
	}
	return ctrl, true
}

func (s *Session) renderOptions(options []descriptor.Option) []OptionModel {
	out := make([]OptionModel, 0, len(options))
	for _, opt := range options {
		out = append(out, OptionModel{
			Value: opt.Value,
			Label: langTitle(opt.Lang, s.locale, opt.Value),
		})
	}
	return out
}

func langTitle(lang map[string]string, locale, fallback string) string {
	if t, ok := lang[locale]; ok && t != "" {
		return t
	}
	return fallback
}
