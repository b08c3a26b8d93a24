// Package workflow is the HTTP client boundary for the upstream core-banking
// workflow service. It owns the request/response envelope contract and the
// classification of auth failures; it does not manage token acquisition.
package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorInfo is one application error reported by the workflow service.
type ErrorInfo struct {
	ExecuteID string `json:"execute_id"`
	Info      string `json:"info"`
	Code      string `json:"code,omitempty"`
}

func (e ErrorInfo) String() string {
	if e.ExecuteID != "" {
		return fmt.Sprintf("[%s] %s", e.ExecuteID, e.Info)
	}
	return e.Info
}

// DataResponse is the inner business result of a workflow call.
type DataResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []ErrorInfo     `json:"errors,omitempty"`
}

// Payload wraps the data response on the wire.
type Payload struct {
	DataResponse DataResponse `json:"dataresponse"`
}

// Envelope is the full response shape of the workflow service.
type Envelope struct {
	Status  int     `json:"status"`
	Payload Payload `json:"payload"`
}

// IsValidResponse is the sole success predicate for a workflow call:
// transport status 200 and a successful data response. Any other shape is
// an error path.
func IsValidResponse(env *Envelope) bool {
	return env != nil && env.Status == 200 && env.Payload.DataResponse.Success
}

// Errors returns the application errors carried by the envelope.
func (e *Envelope) Errors() []ErrorInfo {
	return e.Payload.DataResponse.Errors
}

// DecodeData unmarshals the business payload into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Payload.DataResponse.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload.DataResponse.Data, v)
}

// authErrorMarkers are matched case-insensitively against error info and
// codes to recognize an invalid or expired session.
var authErrorMarkers = []string{
	"unauthorized",
	"token expired",
	"invalid token",
	"session expired",
}

// IsAuthError reports whether the error set indicates an invalid session
// rather than an ordinary business failure.
func IsAuthError(errs []ErrorInfo) bool {
	for _, e := range errs {
		text := strings.ToLower(e.Info + " " + e.Code)
		for _, marker := range authErrorMarkers {
			if strings.Contains(text, marker) {
				return true
			}
		}
		if e.Code == "401" {
			return true
		}
	}
	return false
}
