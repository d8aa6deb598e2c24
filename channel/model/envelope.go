package model

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// CacheData describes how the upstream cached a response.
type CacheData struct {
	Status      CacheStatus `json:"status"`
	CachedAt    MilliTime   `json:"cached_at"`
	CachedUntil MilliTime   `json:"cached_until"`
}

// ErrorDetail is the error object of a failed response. Older responses
// carry a bare string instead of an object; both shapes decode.
type ErrorDetail struct {
	Msg     string `json:"msg"`
	Key     string `json:"key"`
	Context string `json:"context"`
}

func (d *ErrorDetail) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = ErrorDetail{Msg: s}
		return nil
	}
	type detail ErrorDetail
	var v detail
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = ErrorDetail(v)
	return nil
}

// Envelope is the decoded outer wrapper of a successful response.
type Envelope[T any] struct {
	Cache *CacheData
	Data  *T
}

// DecodeEnvelope decodes the envelope common to all responses and then the
// typed payload. Failed requests surface as *APIError when the body carries
// an error detail (which is attempted even on non-2xx statuses), and as
// *DecodeError when the body matches no known shape.
func DecodeEnvelope[T any](status int, body []byte) (*Envelope[T], error) {
	var shell struct {
		Success bool            `json:"success"`
		Error   *ErrorDetail    `json:"error"`
		Cache   *CacheData      `json:"cache"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &shell); err != nil {
		return nil, &DecodeError{Reason: "response is not a valid envelope", Err: err}
	}
	if !shell.Success || status/100 != 2 {
		return nil, apiError(status, shell.Error)
	}
	if len(shell.Data) == 0 || string(shell.Data) == "null" {
		return nil, &DecodeError{Path: "data", Reason: "payload missing from successful response"}
	}
	var payload T
	if err := json.Unmarshal(shell.Data, &payload); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, decodeErr("data", err)
	}
	return &Envelope[T]{Cache: shell.Cache, Data: &payload}, nil
}

func apiError(status int, detail *ErrorDetail) *APIError {
	e := &APIError{Status: status}
	if detail != nil {
		e.Code = detail.Key
		e.Message = detail.Msg
	}
	if e.Code == "" {
		e.Code = codeForStatus(status)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return fmt.Sprintf("http_%d", status)
	}
}
