package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is any non-2xx response from the service. Message carries the
// service-provided detail when one was decodable, otherwise a generic
// fallback per status.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("service error (%d): %s", e.StatusCode, e.Message)
}

// IsRemote reports whether err is a RemoteError and returns it.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	re, ok := IsRemote(err)
	return ok && re.StatusCode == http.StatusUnauthorized
}

// errorBody covers the error shapes the service emits.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// remoteError builds a RemoteError from a response body, falling back to a
// generic message when the body carries none.
func remoteError(statusCode int, body []byte) *RemoteError {
	msg := ""
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Detail != "" {
			msg = eb.Detail
		} else if eb.Message != "" {
			msg = eb.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
		if msg == "" {
			msg = "request failed"
		}
	}
	return &RemoteError{StatusCode: statusCode, Message: msg}
}
