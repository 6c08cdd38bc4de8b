package credstore

import (
	"context"
	"strings"
)

// Field names a persisted credential component.
type Field string

const (
	FieldAccessToken  Field = "access_token"
	FieldRefreshToken Field = "refresh_token"
	FieldTokenType    Field = "token_type"
)

// Credential carries the token material identifying an authenticated session.
// Any field may be empty at the source: a refresh response typically carries
// only a new access token.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Store persists credential fields for one browser session. Implementations
// must degrade to "no credential" on storage failure rather than surface
// errors to readers.
type Store interface {
	// Persist writes each non-empty field after trimming. A nil credential is
	// a no-op. Fields that are empty after trimming are skipped, so a partial
	// credential never clobbers a previously stored value.
	Persist(ctx context.Context, cred *Credential) error
	// Read returns the stored value for field, or "" when the field is unset
	// or the backing storage is unavailable.
	Read(ctx context.Context, field Field) string
	// Clear removes all three fields unconditionally.
	Clear(ctx context.Context) error
}

// Factory builds a Store bound to one session identifier.
type Factory func(sessionID string) Store

// fields lists every persisted component, paired with its accessor.
func fields(cred *Credential) map[Field]string {
	return map[Field]string{
		FieldAccessToken:  strings.TrimSpace(cred.AccessToken),
		FieldRefreshToken: strings.TrimSpace(cred.RefreshToken),
		FieldTokenType:    strings.TrimSpace(cred.TokenType),
	}
}

// allFields is the fixed key set used by Clear.
var allFields = []Field{FieldAccessToken, FieldRefreshToken, FieldTokenType}
