package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error response from the capec-rel API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("capec-rel: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("capec-rel: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// GraphQLError reports errors returned in a GraphQL response body.
type GraphQLError struct {
	Message string
	Count   int
}

func (e *GraphQLError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("capec-rel: graphql: %s (and %d more)", e.Message, e.Count-1)
	}
	return "capec-rel: graphql: " + e.Message
}

// IsInvalidNodeID returns true if the server rejected a node id.
func IsInvalidNodeID(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.Code == "invalid_node_id"
	}
	return false
}

// IsUnsupportedFormat returns true if the server rejected a render format.
func IsUnsupportedFormat(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.Code == "unsupported_format"
	}
	return false
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
