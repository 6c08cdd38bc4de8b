package upstream

import (
	"errors"
	"fmt"
)

var errNoData = errors.New("envelope has no data payload")

// APIError is a well-formed response signaling a business failure. Code is
// the raw vocabulary key for translation; Message is the upstream-provided
// text, which must not be shown to users without translation.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream api error %q: %s", e.Code, e.Message)
}

// DecodeError indicates the response body could not be decoded into the
// expected envelope or payload shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode upstream response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError indicates the request never produced a usable response:
// network failure, or a non-2xx status with no parseable body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
