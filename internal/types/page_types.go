package types

import (
	"corebo/console/internal/table"
	"corebo/console/internal/workflow"
)

// TransactRequest executes one txcode-bound transaction against an open
// form session. SelectedRows, when present, replaces the server-side
// selection for the named table input before dispatch.
type TransactRequest struct {
	SessionID    string         `json:"sessionId"`
	TxCode       string         `json:"txcode"`
	Values       map[string]any `json:"values,omitempty"`
	TableCode    string         `json:"tableCode,omitempty"`
	SelectedRows []table.Row    `json:"selectedRows,omitempty"`
	AllRows      []table.Row    `json:"allRows,omitempty"`
	TxFo         *workflow.TxFo `json:"txfo,omitempty"`
	SearchText   string         `json:"searchtext,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	PageIndex    int            `json:"pageindex,omitempty"`
	PageSize     int            `json:"pagesize,omitempty"`
	Unranged     bool           `json:"unranged,omitempty"`
}

// SearchRequest runs a paginated search for a page without a full
// transact round trip.
type SearchRequest struct {
	SessionID  string         `json:"sessionId"`
	TableCode  string         `json:"tableCode,omitempty"`
	SearchText string         `json:"searchtext,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	PageIndex  int            `json:"pageindex"`
	PageSize   int            `json:"pagesize"`
	Unranged   bool           `json:"unranged,omitempty"`
}

// AdvancedSearchRequest toggles the advanced-search panel for a table.
type AdvancedSearchRequest struct {
	SessionID string `json:"sessionId"`
	TableCode string `json:"tableCode"`
	Expanded  bool   `json:"expanded"`
}

// TransactError is the field-error payload of a blocked submission.
type TransactError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
