package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corebo/console/internal/config"
	"corebo/console/internal/descriptor"
	"corebo/console/internal/table"
	"corebo/console/internal/workflow"
)

type backendStub struct {
	ts       *httptest.Server
	calls    atomic.Int64
	lastBody atomic.Value
	respond  func(w http.ResponseWriter, req *workflow.Request)
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()
	b := &backendStub{}
	b.respond = func(w http.ResponseWriter, req *workflow.Request) {
		json.NewEncoder(w).Encode(workflow.Envelope{
			Status:  200,
			Payload: workflow.Payload{DataResponse: workflow.DataResponse{Success: true}},
		})
	}
	b.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		var req workflow.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.lastBody.Store(&req)
		b.respond(w, &req)
	}))
	t.Cleanup(b.ts.Close)
	return b
}

func (b *backendStub) lastRequest() *workflow.Request {
	req, _ := b.lastBody.Load().(*workflow.Request)
	return req
}

func newTestDispatcher(b *backendStub) *Dispatcher {
	client := workflow.NewClient(&config.WorkflowConfig{
		BaseURL:     b.ts.URL,
		ExecutePath: "/execute",
		Timeout:     5,
	})
	return NewDispatcher(client, config.SearchConfig{
		DefaultPageSize: 10,
		MaxPageSize:     200,
		MaxUnrangedRows: 1000,
	})
}

func TestDispatchUnknownTxCodeNoNetwork(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	_, err := d.Dispatch(context.Background(), &Request{TxCode: "#sys:not-a-thing"})
	assert.ErrorIs(t, err, ErrUnknownTxCode)
	assert.Contains(t, err.Error(), "#sys:not-a-thing")
	assert.Equal(t, int64(0), b.calls.Load())
}

func TestDispatchDeleteEmptySelectionIsNoOp(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{TxCode: TxCodeDelete})
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Equal(t, KindDelete, result.Kind)
	assert.Equal(t, int64(0), b.calls.Load())
}

func TestDispatchDeletePostsSelectedRows(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{
		TxCode: TxCodeDelete,
		TxFo:   &workflow.TxFo{WorkflowID: "WF-1"},
		SelectedRows: []table.Row{
			{"id": "A"},
			{"id": "B"},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.NoOp)
	assert.True(t, result.Refresh)
	assert.Equal(t, "tx.data_deleted", result.MessageKey)

	sent := b.lastRequest()
	require.NotNil(t, sent)
	assert.Equal(t, "WF-1", sent.WorkflowID)
	rows, ok := sent.Input["rows"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestDispatchCreateAndUpdateRefresh(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	for _, txcode := range []string{TxCodeCreate, TxCodeUpdate} {
		result, err := d.Dispatch(context.Background(), &Request{
			TxCode:     txcode,
			TxFo:       &workflow.TxFo{WorkflowID: "WF-1"},
			FormValues: map[string]any{"customer_name": "Ngoc"},
		})
		require.NoError(t, err, txcode)
		assert.True(t, result.Refresh, txcode)
		assert.Equal(t, "tx.data_changed", result.MessageKey, txcode)

		sent := b.lastRequest()
		assert.Equal(t, "Ngoc", sent.Input["customer_name"])
	}
	assert.Equal(t, int64(2), b.calls.Load())
}

func TestDispatchSearchClampsPageSize(t *testing.T) {
	b := newBackendStub(t)
	b.respond = func(w http.ResponseWriter, req *workflow.Request) {
		json.NewEncoder(w).Encode(workflow.Envelope{
			Status: 200,
			Payload: workflow.Payload{DataResponse: workflow.DataResponse{
				Success: true,
				Data:    json.RawMessage(`{"items":[{"id":"1"}],"total":1}`),
			}},
		})
	}
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{
		TxCode:    TxCodeSearch,
		TxFo:      &workflow.TxFo{WorkflowID: "WF-1", Pathname: "customer-lookup"},
		PageIndex: 0,
		PageSize:  99999,
	})
	require.NoError(t, err)

	sent := b.lastRequest()
	assert.Equal(t, 1, sent.PageIndex)
	assert.Equal(t, 200, sent.PageSize)

	page, ok := result.Payload.(table.PageData[table.Row])
	require.True(t, ok)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestDispatchSearchUnranged(t *testing.T) {
	b := newBackendStub(t)
	b.respond = func(w http.ResponseWriter, req *workflow.Request) {
		json.NewEncoder(w).Encode(workflow.Envelope{
			Status: 200,
			Payload: workflow.Payload{DataResponse: workflow.DataResponse{
				Success: true,
				Data:    json.RawMessage(`{"items":[],"total":0}`),
			}},
		})
	}
	d := newTestDispatcher(b)

	_, err := d.Dispatch(context.Background(), &Request{
		TxCode:    TxCodeSearch,
		TxFo:      &workflow.TxFo{WorkflowID: "WF-1", Pathname: "ccy-list"},
		PageIndex: 7,
		PageSize:  20,
		Unranged:  true,
	})
	require.NoError(t, err)

	sent := b.lastRequest()
	assert.Equal(t, 1, sent.PageIndex)
	assert.Equal(t, 1000, sent.PageSize)
}

func TestDispatchSearchBuildsLookup(t *testing.T) {
	b := newBackendStub(t)
	b.respond = func(w http.ResponseWriter, req *workflow.Request) {
		json.NewEncoder(w).Encode(workflow.Envelope{
			Status: 200,
			Payload: workflow.Payload{DataResponse: workflow.DataResponse{
				Success: true,
				Data:    json.RawMessage(`{"items":[],"total":0}`),
			}},
		})
	}
	d := newTestDispatcher(b)

	_, err := d.Dispatch(context.Background(), &Request{
		TxCode:     TxCodeSearch,
		TxFo:       &workflow.TxFo{WorkflowID: "WF-1", Pathname: "customer-lookup"},
		SearchText: "nguyen",
		PageIndex:  2,
		PageSize:   25,
	})
	require.NoError(t, err)

	sent := b.lastRequest()
	require.NotNil(t, sent.Lookup)
	assert.Equal(t, "customer-lookup", sent.Lookup.Fields.CommandName)
	assert.True(t, sent.Lookup.Fields.IsSearch)
	assert.Equal(t, "nguyen", sent.Lookup.Fields.Parameters)
	assert.Equal(t, 2, sent.Lookup.Fields.PageIndex)
}

func TestDispatchBusyInstance(t *testing.T) {
	b := newBackendStub(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	var enteredOnce sync.Once
	b.respond = func(w http.ResponseWriter, req *workflow.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		json.NewEncoder(w).Encode(workflow.Envelope{
			Status:  200,
			Payload: workflow.Payload{DataResponse: workflow.DataResponse{Success: true}},
		})
	}
	d := newTestDispatcher(b)

	first := make(chan error, 1)
	go func() {
		_, err := d.Dispatch(context.Background(), &Request{
			TxCode:     TxCodeCreate,
			InstanceID: "form-1",
			TxFo:       &workflow.TxFo{WorkflowID: "WF-1"},
		})
		first <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first dispatch never reached the backend")
	}

	// Same instance: rejected while the first call is still in flight.
	_, err := d.Dispatch(context.Background(), &Request{
		TxCode:     TxCodeCreate,
		InstanceID: "form-1",
		TxFo:       &workflow.TxFo{WorkflowID: "WF-1"},
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-first)

	// Instance freed after completion.
	_, err = d.Dispatch(context.Background(), &Request{
		TxCode:     TxCodeCreate,
		InstanceID: "form-1",
		TxFo:       &workflow.TxFo{WorkflowID: "WF-1"},
	})
	assert.NoError(t, err)
}

func TestDispatchViewFirstSelectedRow(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{
		TxCode: TxCodeView,
		TxFo:   &workflow.TxFo{WorkflowID: "WF-1", Pathname: "/customer/detail"},
		SelectedRows: []table.Row{
			{"id": "A", "name": "first"},
			{"id": "B", "name": "second"},
		},
	})
	require.NoError(t, err)

	target, ok := result.Payload.(*ViewTarget)
	require.True(t, ok)
	assert.Equal(t, "/customer/detail", target.Pathname)
	assert.Equal(t, "first", target.Row["name"])
	assert.Equal(t, "view", target.Mode)
	assert.Equal(t, int64(0), b.calls.Load())
}

func TestDispatchViewEmptySelectionIsNoOp(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{TxCode: TxCodeView})
	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Equal(t, int64(0), b.calls.Load())
}

func TestDispatchExportSelectedRows(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	columns := []descriptor.Column{
		{Key: "id", Lang: map[string]string{"en": "ID"}},
		{Key: "name", Lang: map[string]string{"en": "Name"}},
	}
	result, err := d.Dispatch(context.Background(), &Request{
		TxCode:       TxCodeExport,
		Language:     "en",
		Columns:      columns,
		SelectedRows: []table.Row{{"id": "C1", "name": "Anh"}},
		AllRows:      []table.Row{{"id": "C1", "name": "Anh"}, {"id": "C2", "name": "Binh"}},
	})
	require.NoError(t, err)

	file, ok := result.Payload.(*ExportFile)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(file.Name, ".csv"))

	content := string(file.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name", lines[0])
	assert.Equal(t, "C1,Anh", lines[1])
	assert.Equal(t, int64(0), b.calls.Load())
}

func TestDispatchExportFallsBackToAllRows(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	result, err := d.Dispatch(context.Background(), &Request{
		TxCode:  TxCodeExport,
		Columns: []descriptor.Column{{Key: "id"}},
		AllRows: []table.Row{{"id": "C1"}, {"id": "C2"}},
	})
	require.NoError(t, err)

	file := result.Payload.(*ExportFile)
	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	assert.Len(t, lines, 3)
}

func TestDispatchExportNoColumns(t *testing.T) {
	b := newBackendStub(t)
	d := newTestDispatcher(b)

	_, err := d.Dispatch(context.Background(), &Request{
		TxCode:  TxCodeExport,
		AllRows: []table.Row{{"id": "C1"}},
	})
	assert.Error(t, err)
}
