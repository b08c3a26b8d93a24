package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"corebo/console/internal/config"
	"corebo/console/internal/utils"
)

// ErrSessionExpired marks a call rejected because the session token is no
// longer valid. Callers escalate this to a forced logout instead of showing
// an ordinary error.
var ErrSessionExpired = errors.New("workflow: session expired")

// AppError carries the business errors of a failed workflow call.
type AppError struct {
	Errs []ErrorInfo
}

func (e *AppError) Error() string {
	if len(e.Errs) == 0 {
		return "workflow: call failed"
	}
	return fmt.Sprintf("workflow: %s", e.Errs[0].String())
}

// First returns the first reported error, or a zero value when none exist.
func (e *AppError) First() ErrorInfo {
	if len(e.Errs) == 0 {
		return ErrorInfo{}
	}
	return e.Errs[0]
}

// Request is one call to the workflow execution endpoint.
type Request struct {
	SessionToken string         `json:"sessiontoken"`
	WorkflowID   string         `json:"workflowid"`
	CommandName  string         `json:"commandname,omitempty"`
	Input        map[string]any `json:"input,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Lookup       *LookupTxFo    `json:"lookup,omitempty"`
	PageIndex    int            `json:"pageindex,omitempty"`
	PageSize     int            `json:"pagesize,omitempty"`
	Language     string         `json:"language,omitempty"`
}

// Client calls the upstream workflow service.
type Client struct {
	baseURL     string
	executePath string
	httpClient  *http.Client
}

// NewClient creates a workflow client from configuration.
func NewClient(cfg *config.WorkflowConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		executePath: cfg.ExecutePath,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Execute posts one request and parses the response envelope.
//
// The error taxonomy is:
//   - transport failure or unexpected body -> wrapped transport error
//   - HTTP 401 or auth-classified envelope errors -> ErrSessionExpired
//   - unsuccessful data response -> *AppError with the reported errors
//
// A nil error means IsValidResponse holds for the returned envelope.
func (c *Client) Execute(ctx context.Context, req *Request) (*Envelope, error) {
	body, err := utils.ToJSONBytes(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + c.executePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.SessionToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.SessionToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("workflow call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("workflow service error (%d): %s", resp.StatusCode, truncate(respBody, 200))
	}

	var env Envelope
	if err := utils.FromJSONBytes(respBody, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	if !IsValidResponse(&env) {
		errs := env.Errors()
		if IsAuthError(errs) {
			return &env, ErrSessionExpired
		}
		return &env, &AppError{Errs: errs}
	}
	return &env, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
