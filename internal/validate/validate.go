// Package validate holds the pure input schemas checked before any request
// leaves the gateway. Each ParseX returns a typed value or a list of
// field-level violations; nothing here touches the network.
package validate

import (
	"encoding/json"
	"net/mail"
	"strings"
	"unicode"
)

// Violation is a single field-level schema failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations aggregates schema failures for one input. It implements error
// so form handlers can propagate it, but it is always resolved locally and
// never sent upstream.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, violation.Field+": "+violation.Message)
	}
	return strings.Join(parts, "; ")
}

func (v *Violations) add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// FlexNumber accepts a JSON number or a numeric-looking string and preserves
// the raw text for later coercion. Non-scalar values keep their raw form and
// fail coercion with a violation rather than a decode error.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			*n = FlexNumber(s)
			return nil
		}
	}
	*n = FlexNumber(trimmed)
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func containsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func containsLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
