package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridianpay/dashboard/internal/credstore"
)

const (
	// EndpointWhoAmI is the fixed identity-check endpoint consulted by the
	// session guard.
	EndpointWhoAmI = "/api/v1/auth/me"

	defaultTokenType = "Bearer"
	defaultTimeout   = 15 * time.Second

	// Outbound burst smoothing toward the wallet API. Generous on purpose:
	// the limiter exists to absorb pathological bursts, not to throttle
	// normal traffic.
	defaultRatePerSec = 50
	defaultBurst      = 100
)

// Client is the single chokepoint for calls to the upstream wallet API. It
// attaches the stored credential, decodes the response envelope and raises a
// classified error when the envelope signals failure, so every caller gets
// uniform failure semantics.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	store   credstore.Store
}

// New builds an unbound client for the given base URL. Bind a session's
// credential store with WithStore before issuing requests.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultBurst),
	}
}

// WithStore returns a shallow copy of the client bound to the given
// credential store. The transport and limiter are shared across bindings.
func (c *Client) WithStore(store credstore.Store) *Client {
	bound := *c
	bound.store = store
	return &bound
}

// Do issues one request and decodes the envelope. Body may be nil (no body),
// pre-serialized ([]byte or json.RawMessage), or any JSON-marshalable value.
// Failures are classified as *TransportError, *DecodeError or *APIError; on
// *APIError the decoded envelope is returned alongside the error.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Envelope{}, &TransportError{Err: err}
	}

	payload, err := serialize(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("serialize request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return Envelope{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachCredential(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, &TransportError{Err: err}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// A failing status with an unreadable body is a transport-level
		// failure; a 2xx body we cannot decode is a decode failure.
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return Envelope{}, &TransportError{Err: fmt.Errorf("status %d with unparseable body", resp.StatusCode)}
		}
		return Envelope{}, &DecodeError{Err: err}
	}

	if !env.Succeeded() {
		return env, &APIError{Code: env.CodeString(), Message: env.Message}
	}
	return env, nil
}

// attachCredential sets the Authorization header from the bound store when an
// access token is present. The token type defaults to Bearer.
func (c *Client) attachCredential(ctx context.Context, req *http.Request) {
	if c.store == nil {
		return
	}
	token := c.store.Read(ctx, credstore.FieldAccessToken)
	if token == "" {
		return
	}
	tokenType := c.store.Read(ctx, credstore.FieldTokenType)
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	req.Header.Set("Authorization", tokenType+" "+token)
}

func serialize(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(v), nil
	case json.RawMessage:
		return bytes.NewReader(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(raw), nil
	}
}
