package supabase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const maxRawMessage = 512

// APIError is a non-2xx response from a Supabase service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// GoTrue and PostgREST disagree on field names; the first non-empty one wins.
type errorBody struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if m != "" {
				apiErr.Message = m
				break
			}
		}
		apiErr.Code = body.ErrorCode
		if s, ok := body.Code.(string); ok && apiErr.Code == "" {
			apiErr.Code = s
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if len(apiErr.Message) > maxRawMessage {
			apiErr.Message = apiErr.Message[:maxRawMessage]
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
