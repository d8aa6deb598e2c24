package model

import "fmt"

// DecodeError reports that a payload did not match any known or fallback
// shape. Path names the field that failed, when known.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(path string, err error) *DecodeError {
	return &DecodeError{Path: path, Reason: err.Error(), Err: err}
}

// APIError is a domain-level failure reported by the upstream service,
// e.g. a lookup for a user that does not exist.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %s (HTTP %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}
