// Package guard implements the mount-time session check run for every
// protected view. The guard decides locally only whether a credential exists;
// the actual trust decision is delegated to the wallet API's identity-check
// endpoint.
package guard

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/meridianpay/dashboard/internal/credstore"
	"github.com/meridianpay/dashboard/internal/upstream"
)

// PublicEntryRoute is the single redirect target on rejection. Rejected
// sessions always land on the public entry point, never a per-route login.
const PublicEntryRoute = "/auth"

// State is the derived session state for one guard run. It is recomputed per
// run and never persisted.
type State int

const (
	StateUnauthenticated State = iota
	StateVerifying
	StateAuthenticated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return "unauthenticated"
	}
}

// IdentityChecker issues the identity-check request. *upstream.Client bound
// to the session's store satisfies it.
type IdentityChecker interface {
	Do(ctx context.Context, method, path string, body any) (upstream.Envelope, error)
}

// RedirectFunc applies the rejection side effect: navigation to route.
type RedirectFunc func(route string)

// Guard is a one-shot verification state machine. Independent runs share no
// state: simultaneous mounts of several protected views each issue their own
// identity check. Known inefficiency, kept deliberately.
type Guard struct {
	store    credstore.Store
	check    IdentityChecker
	redirect RedirectFunc
	logger   *slog.Logger
}

// New builds a guard over the session's credential store. The redirect
// callback receives the public entry route on rejection; the guard itself
// never mutates the credential store.
func New(store credstore.Store, check IdentityChecker, redirect RedirectFunc, logger *slog.Logger) *Guard {
	return &Guard{store: store, check: check, redirect: redirect, logger: logger}
}

// Run executes one verification attempt and returns the terminal state. If
// ctx is done by the time the identity check resolves, the outcome is
// discarded: no redirect fires and Run reports StateVerifying, meaning no
// transition was applied. There is no retry; a failed run leaves
// re-authentication as the only remedy.
func (g *Guard) Run(ctx context.Context) State {
	token := strings.TrimSpace(g.store.Read(ctx, credstore.FieldAccessToken))
	if token == "" {
		// No credential at all: reject without touching the network.
		g.redirect(PublicEntryRoute)
		return StateRejected
	}

	env, err := g.check.Do(ctx, http.MethodPost, upstream.EndpointWhoAmI, struct{}{})
	if ctx.Err() != nil {
		return StateVerifying
	}
	if err != nil || !env.Succeeded() {
		// Decode, transport and API failures are all treated the same: any
		// failure at all evicts the session.
		g.logger.Info("session check rejected", "error", err)
		g.redirect(PublicEntryRoute)
		return StateRejected
	}
	return StateAuthenticated
}

// Start runs the guard fire-and-forget. The caller's content is served
// immediately; the redirect, if any, lands when the check resolves. Cancel
// ctx to discard the outcome (the unmount case).
func (g *Guard) Start(ctx context.Context) {
	go g.Run(ctx)
}
