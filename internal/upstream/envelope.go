package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope is the uniform response wrapper used by the wallet API. The code
// arrives as either a JSON number or a string, so it is kept raw and compared
// numerically on demand.
type Envelope struct {
	Code    json.RawMessage `json:"code"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

const successCode = 200

// CodeString returns the textual form of the status code, with string codes
// unquoted, suitable for error-vocabulary lookup.
func (e Envelope) CodeString() string {
	raw := bytes.TrimSpace(e.Code)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	return string(raw)
}

// Succeeded reports whether the envelope signals success: the code, parsed as
// a number, equals 200 AND a data payload is present. A code that does not
// parse as a number fails closed. The string "200" succeeds; 200 with no data
// does not.
func (e Envelope) Succeeded() bool {
	code, err := strconv.ParseFloat(strings.TrimSpace(e.CodeString()), 64)
	if err != nil {
		return false
	}
	return code == successCode && e.HasData()
}

// HasData reports whether a data payload is present. An empty JSON object or
// array counts as present; JSON null does not.
func (e Envelope) HasData() bool {
	raw := bytes.TrimSpace(e.Data)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Data decodes the envelope payload into T. Malformed payloads surface as a
// *DecodeError, matching the client's classification.
func Data[T any](e Envelope) (T, error) {
	var out T
	if !e.HasData() {
		return out, &DecodeError{Err: errNoData}
	}
	if err := json.Unmarshal(e.Data, &out); err != nil {
		return out, &DecodeError{Err: err}
	}
	return out, nil
}
