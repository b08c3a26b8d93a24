package workflow

// TxFo wraps one logical remote workflow call. It is constructed per
// button action, never mutated after construction, and used for exactly
// one call.
type TxFo struct {
	Input      map[string]any `json:"input,omitempty"`
	WorkflowID string         `json:"workflowid"`
	Pathname   string         `json:"pathname,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// LookupFields is the inner field block of an ad hoc lookup call.
type LookupFields struct {
	CommandName string `json:"commandname"`
	PageIndex   int    `json:"pageindex"`
	PageSize    int    `json:"pagesize"`
	IsSearch    bool   `json:"issearch"`
	Parameters  string `json:"parameters"`
}

// LookupTxFo is the canonical request envelope for ad hoc SQL-backed
// lookups. The shape is fixed for backward compatibility with the
// existing backend; do not reorder or rename fields.
type LookupTxFo struct {
	Fields     LookupFields `json:"fields"`
	LearnAPI   bool         `json:"learn_api"`
	WorkflowID string       `json:"workflowid"`
}

// CreateTxFo builds a lookup envelope for the given command. A non-empty
// textSearch marks the call as a search. Page index is 1-based.
func CreateTxFo(commandName, textSearch string, pageIndex, pageSize int) *LookupTxFo {
	if pageIndex < 1 {
		pageIndex = 1
	}
	return &LookupTxFo{
		Fields: LookupFields{
			CommandName: commandName,
			PageIndex:   pageIndex,
			PageSize:    pageSize,
			IsSearch:    textSearch != "",
			Parameters:  textSearch,
		},
		LearnAPI:   true,
		WorkflowID: "",
	}
}
