package channel

import "fmt"

// TransportError wraps a network-level failure (DNS, TLS, connection). It
// is surfaced verbatim; the client never retries.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError reports invalid request parameters. It is returned before
// any network traffic happens.
type RequestError struct {
	Param  string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request parameter %s: %s", e.Param, e.Reason)
}

func requestErr(param, format string, args ...any) *RequestError {
	return &RequestError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
