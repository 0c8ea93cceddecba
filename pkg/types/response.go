// Package types holds the wire shapes shared between controllers and
// clients.
package types

// APIError is the public error payload.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError the way every non-2xx response is shaped.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
