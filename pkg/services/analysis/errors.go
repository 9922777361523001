package analysis

import (
	"fmt"
	"strings"
)

// RequestError is a transport-level failure: the request never completed.
// It is recoverable locally and should surface with a retry affordance.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// APIError is a completed request that the backend rejected. Message and
// Detail come from the backend's error body when its Content-Type was JSON;
// Hints are backend-authored remediation guidance shown to the user
// verbatim.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
	Hints      []string
	Debug      map[string]any
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage renders the message plus any hints as a bulleted list.
func (e *APIError) UserMessage() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, hint := range e.Hints {
		b.WriteString("\n- ")
		b.WriteString(hint)
	}
	return b.String()
}

// ParseError reports a response body that was not valid JSON. The raw text
// is kept (truncated) for diagnostics only; it is logged, never shown to
// the end user.
type ParseError struct {
	Op  string
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: could not parse server response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
