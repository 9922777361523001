package api

import "encoding/json"

// Envelope is the common response wrapper the analysis service puts around
// every JSON body.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`

	// Error fields, populated on non-2xx responses.
	Error  string         `json:"error,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Hints  []string       `json:"hints,omitempty"`
	Debug  map[string]any `json:"debug,omitempty"`
}

type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorBody is the backend-authored error payload. Hints are remediation
// guidance meant to be shown to the user verbatim.
type ErrorBody struct {
	Error  string         `json:"error"`
	Detail string         `json:"detail,omitempty"`
	Hints  []string       `json:"hints,omitempty"`
	Debug  map[string]any `json:"debug,omitempty"`
}
