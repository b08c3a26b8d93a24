package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"corebo/console/internal/config"
	"corebo/console/internal/descriptor"
	"corebo/console/internal/logger"
	"corebo/console/internal/table"
	"corebo/console/internal/workflow"
)

var (
	// ErrUnknownTxCode is returned for txcodes outside the recognized set.
	// No network call is made for unknown codes.
	ErrUnknownTxCode = errors.New("dispatch: unknown txcode")

	// ErrBusy is returned when a transaction for the same form instance is
	// already in flight. Guards against duplicate submits at the request
	// level, not just at the button-disabled level.
	ErrBusy = errors.New("dispatch: transaction already in flight")
)

// Request carries everything one dispatch needs. SelectedRows and AllRows
// come from the caller's table state; FormValues from the form session.
type Request struct {
	TxCode       string
	InstanceID   string
	SessionToken string
	Language     string

	TxFo       *workflow.TxFo
	FormValues map[string]any

	SelectedRows []table.Row
	AllRows      []table.Row
	Columns      []descriptor.Column

	SearchText string
	Parameters map[string]any
	PageIndex  int
	PageSize   int
	Unranged   bool
}

// ViewTarget is the navigation result of a view command.
type ViewTarget struct {
	Pathname string    `json:"pathname"`
	Row      table.Row `json:"row"`
	Mode     string    `json:"mode"`
}

// ExportFile is the client-download result of an export command.
type ExportFile struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// Result is the normalized outcome of one dispatch.
type Result struct {
	Kind       Kind   `json:"kind"`
	NoOp       bool   `json:"noop,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
	MessageKey string `json:"message_key,omitempty"`
	Payload    any    `json:"payload,omitempty"`
}

// Dispatcher executes parsed commands against the workflow service.
type Dispatcher struct {
	client *workflow.Client
	search config.SearchConfig

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewDispatcher creates a dispatcher bound to a workflow client.
func NewDispatcher(client *workflow.Client, search config.SearchConfig) *Dispatcher {
	return &Dispatcher{
		client:   client,
		search:   search,
		inflight: make(map[string]struct{}),
	}
}

// tryBegin reserves the form instance for one in-flight transaction.
func (d *Dispatcher) tryBegin(instanceID string) bool {
	if instanceID == "" {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[instanceID]; busy {
		return false
	}
	d.inflight[instanceID] = struct{}{}
	return true
}

func (d *Dispatcher) end(instanceID string) {
	if instanceID == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inflight, instanceID)
}

// Dispatch parses the txcode and runs the matching operation. Unknown
// codes fail fast without touching the network; a busy form instance
// returns ErrBusy without queueing.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*Result, error) {
	cmd := ParseTxCode(req.TxCode)
	if cmd.Kind == KindUnknown {
		logger.Warn("unknown txcode", zap.String("txcode", cmd.Raw))
		return nil, fmt.Errorf("%w: %q", ErrUnknownTxCode, cmd.Raw)
	}

	if !d.tryBegin(req.InstanceID) {
		return nil, ErrBusy
	}
	defer d.end(req.InstanceID)

	switch cmd.Kind {
	case KindSearch:
		return d.doSearch(ctx, req)
	case KindCreate:
		return d.doCreate(ctx, req)
	case KindUpdate:
		return d.doUpdate(ctx, req)
	case KindDelete:
		return d.doDelete(ctx, req)
	case KindView:
		return d.doView(req)
	case KindExport:
		return d.doExport(req)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTxCode, cmd.Raw)
}

// pagePayload is the wire shape of a search data response.
type pagePayload struct {
	Items     []table.Row `json:"items"`
	Total     int64       `json:"total"`
	PageIndex int         `json:"pageindex"`
	PageSize  int         `json:"pagesize"`
}

// doSearch runs a paginated search. Unranged mode replaces the old
// pagesize=9999 idiom with an explicit load-all bounded by a safety cap.
func (d *Dispatcher) doSearch(ctx context.Context, req *Request) (*Result, error) {
	pageIndex := req.PageIndex
	pageSize := req.PageSize
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize <= 0 {
		pageSize = d.search.DefaultPageSize
	}
	if pageSize > d.search.MaxPageSize {
		pageSize = d.search.MaxPageSize
	}
	if req.Unranged {
		pageIndex = 1
		pageSize = d.search.MaxUnrangedRows
	}

	wreq := &workflow.Request{
		SessionToken: req.SessionToken,
		WorkflowID:   workflowID(req),
		Parameters:   req.Parameters,
		PageIndex:    pageIndex,
		PageSize:     pageSize,
		Language:     req.Language,
	}
	if req.TxFo != nil {
		wreq.CommandName = req.TxFo.Pathname
	}
	if req.SearchText != "" || wreq.CommandName != "" {
		wreq.Lookup = workflow.CreateTxFo(wreq.CommandName, req.SearchText, pageIndex, pageSize)
	}

	env, err := d.client.Execute(ctx, wreq)
	if err != nil {
		return nil, err
	}

	var page pagePayload
	if err := env.DecodeData(&page); err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}
	data := table.NewPageData(page.Items, page.Total, pageIndex, pageSize)

	return &Result{Kind: KindSearch, Payload: data}, nil
}

// doCreate posts the form values as a new record.
func (d *Dispatcher) doCreate(ctx context.Context, req *Request) (*Result, error) {
	wreq := &workflow.Request{
		SessionToken: req.SessionToken,
		WorkflowID:   workflowID(req),
		Input:        req.FormValues,
		Language:     req.Language,
	}
	if _, err := d.client.Execute(ctx, wreq); err != nil {
		return nil, err
	}
	return &Result{Kind: KindCreate, Refresh: true, MessageKey: "tx.data_changed"}, nil
}

// doUpdate posts the form values against the entity identified in the TxFo.
func (d *Dispatcher) doUpdate(ctx context.Context, req *Request) (*Result, error) {
	wreq := &workflow.Request{
		SessionToken: req.SessionToken,
		WorkflowID:   workflowID(req),
		Input:        req.FormValues,
		Language:     req.Language,
	}
	if req.TxFo != nil {
		wreq.Parameters = req.TxFo.Parameters
	}
	if _, err := d.client.Execute(ctx, wreq); err != nil {
		return nil, err
	}
	return &Result{Kind: KindUpdate, Refresh: true, MessageKey: "tx.data_changed"}, nil
}

// doDelete bulk-posts the selected rows. An empty selection is a no-op and
// never reaches the network.
func (d *Dispatcher) doDelete(ctx context.Context, req *Request) (*Result, error) {
	if len(req.SelectedRows) == 0 {
		return &Result{Kind: KindDelete, NoOp: true}, nil
	}
	wreq := &workflow.Request{
		SessionToken: req.SessionToken,
		WorkflowID:   workflowID(req),
		Input: map[string]any{
			"rows": req.SelectedRows,
		},
		Language: req.Language,
	}
	if _, err := d.client.Execute(ctx, wreq); err != nil {
		return nil, err
	}
	return &Result{Kind: KindDelete, Refresh: true, MessageKey: "tx.data_deleted"}, nil
}

// doView returns a read-only navigation target for the first selected row.
func (d *Dispatcher) doView(req *Request) (*Result, error) {
	if len(req.SelectedRows) == 0 {
		return &Result{Kind: KindView, NoOp: true}, nil
	}
	pathname := ""
	if req.TxFo != nil {
		pathname = req.TxFo.Pathname
	}
	target := &ViewTarget{
		Pathname: pathname,
		Row:      req.SelectedRows[0],
		Mode:     "view",
	}
	return &Result{Kind: KindView, Payload: target}, nil
}

// doExport produces a CSV of the selected rows, or all loaded rows when
// nothing is selected. Purely client-side; no network call.
func (d *Dispatcher) doExport(req *Request) (*Result, error) {
	rows := req.SelectedRows
	if len(rows) == 0 {
		rows = req.AllRows
	}
	file, err := writeCSV(req.Columns, rows, req.Language)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindExport, Payload: file}, nil
}

func workflowID(req *Request) string {
	if req.TxFo != nil {
		return req.TxFo.WorkflowID
	}
	return ""
}
