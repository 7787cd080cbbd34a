package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is a successful (2xx) reply. The body is returned as received; the
// data/status/timestamp/path envelope is a backend convention decoded by callers.
type Response struct {
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
}

// IsJSON reports whether the server labelled the body as JSON.
func (r *Response) IsJSON() bool {
	return isJSONContentType(r.ContentType)
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into v. Non-JSON and empty bodies leave v untouched.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %d response: %w", r.StatusCode, err)
	}
	return nil
}

func isJSONContentType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), "json")
}

// errorMessage extracts body.message, accepting a string or a list of strings.
func errorMessage(contentType string, body []byte) string {
	if !isJSONContentType(contentType) || len(body) == 0 {
		return ""
	}
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, ", ")
	}
	return ""
}
