package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/dictionary"
	"corebo/console/internal/dispatch"
	"corebo/console/internal/logger"
	"corebo/console/internal/table"
	"corebo/console/internal/workflow"
)

// State is the submit state of a form session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

// ErrSubmitting is returned when a submit arrives while another one is
// still in flight for the same session.
var ErrSubmitting = errors.New("form: submit already in flight")

// FieldError is a local validation failure for one field. It never
// reaches the network.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationFailure aggregates field errors for one blocked submission.
type ValidationFailure struct {
	Fields []FieldError
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("form: %d field(s) failed validation", len(e.Fields))
}

// Session orchestrates one page: it owns FormValues and selection state
// for the lifetime of the page, and serializes submissions through an
// idle -> submitting -> idle state machine. On error the values are
// preserved unchanged so the user can correct and resubmit.
type Session struct {
	ID         string
	Descriptor *descriptor.FormDescriptor

	mu         sync.Mutex
	state      State
	values     Values
	selections map[string]*table.Selection

	locale   string
	dict     *dictionary.Dictionary
	roleTask *RoleTask
}

// NewSession creates a session for a parsed descriptor. Initial values
// come from descriptor defaults, overridden by initial data from a prior
// view fetch when present.
func NewSession(desc *descriptor.FormDescriptor, locale string, dict *dictionary.Dictionary, initial Values) *Session {
	values := InitialValues(desc, time.Now())
	for k, v := range initial {
		values[k] = v
	}

	s := &Session{
		ID:         uuid.NewString(),
		Descriptor: desc,
		state:      StateIdle,
		values:     values,
		selections: make(map[string]*table.Selection),
		locale:     locale,
		dict:       dict,
	}

	WalkInputs(desc, func(in *descriptor.Input) {
		if cfg, ok := in.Config.(descriptor.TableConfig); ok {
			s.selections[in.Code] = table.NewSelection(cfg.IdentityField)
		}
	})
	return s
}

// SetRoleTask attaches the per-user visibility overlay.
func (s *Session) SetRoleTask(rt *RoleTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleTask = rt
}

// SetValue commits one field value.
func (s *Session) SetValue(code string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[code] = value
}

// SetValues merges a batch of field values.
func (s *Session) SetValues(values Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
}

// Values returns a copy of the bound values.
func (s *Session) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

// Selection returns the selection state for a table input.
func (s *Session) Selection(inputCode string) *table.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selections[inputCode]
}

// State returns the current submit state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Validate checks required and format rules against the current values.
// Hidden fields are exempt: a user cannot fill what they cannot see.
func (s *Session) Validate() []FieldError {
	s.mu.Lock()
	values := s.values.Clone()
	rt := s.roleTask
	s.mu.Unlock()

	var fieldErrs []FieldError
	WalkInputs(s.Descriptor, func(in *descriptor.Input) {
		if !valueBearing(in.Type) || rt.IsHidden(in.Code) {
			return
		}
		value := values[in.Code]
		if descriptor.IsFieldRequired(in) && isEmptyValue(value) {
			fieldErrs = append(fieldErrs, FieldError{
				Code:    in.Code,
				Message: s.dict.T(s.locale, "form.field_required", in.Title(s.locale)),
			})
			return
		}
		if re, ok := descriptor.FormatPattern(in); ok && !isEmptyValue(value) {
			if str, isStr := value.(string); isStr && !re.MatchString(str) {
				fieldErrs = append(fieldErrs, FieldError{
					Code:    in.Code,
					Message: s.dict.T(s.locale, "form.field_format", in.Title(s.locale)),
				})
			}
		}
	})
	return fieldErrs
}

// beginSubmit transitions idle -> submitting.
func (s *Session) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmitting
	}
	s.state = StateSubmitting
	return nil
}

func (s *Session) endSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}

// Submit runs the txcode-bound transaction for this session. Mutating
// commands are gated on local validation first; validation errors never
// reach the network. On any error the bound values stay untouched.
func (s *Session) Submit(ctx context.Context, d *dispatch.Dispatcher, txcode string, opts SubmitOptions) (*dispatch.Result, error) {
	cmd := dispatch.ParseTxCode(txcode)
	if cmd.Kind == dispatch.KindCreate || cmd.Kind == dispatch.KindUpdate {
		if fieldErrs := s.Validate(); len(fieldErrs) > 0 {
			return nil, &ValidationFailure{Fields: fieldErrs}
		}
	}

	if err := s.beginSubmit(); err != nil {
		return nil, err
	}
	defer s.endSubmit()

	req := &dispatch.Request{
		TxCode:       txcode,
		InstanceID:   s.ID,
		SessionToken: opts.SessionToken,
		Language:     s.locale,
		TxFo:         opts.TxFo,
		FormValues:   s.Values().ToTxFoInput(),
		SearchText:   opts.SearchText,
		Parameters:   opts.Parameters,
		PageIndex:    opts.PageIndex,
		PageSize:     opts.PageSize,
		Unranged:     opts.Unranged,
	}
	if sel := s.Selection(opts.TableCode); sel != nil {
		req.SelectedRows = sel.Rows()
	}
	req.AllRows = opts.AllRows
	req.Columns = opts.Columns

	result, err := d.Dispatch(ctx, req)
	if err != nil {
		if !errors.Is(err, workflow.ErrSessionExpired) {
			logger.Error("transaction failed",
				zap.String("form", s.Descriptor.Key),
				zap.String("txcode", txcode),
				zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}

// SubmitOptions carries per-call inputs that are not session state.
type SubmitOptions struct {
	SessionToken string
	TxFo         *workflow.TxFo
	TableCode    string
	AllRows      []table.Row
	Columns      []descriptor.Column
	SearchText   string
	Parameters   map[string]any
	PageIndex    int
	PageSize     int
	Unranged     bool
}
