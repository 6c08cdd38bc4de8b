package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/meridianpay/dashboard/internal/activity"
	"github.com/meridianpay/dashboard/internal/credstore"
	"github.com/meridianpay/dashboard/internal/guard"
	"github.com/meridianpay/dashboard/internal/middleware"
	"github.com/meridianpay/dashboard/internal/notify"
)

// SessionHandler exposes the session-facing API: the synchronous guard run
// used by the SPA on mount, session facts, the activity feed and the toast
// queue.
type SessionHandler struct {
	guards   middleware.GuardDeps
	stores   credstore.Factory
	activity activity.Repository
	notifier notify.Notifier
}

// NewSessionHandler builds the session API handler.
func NewSessionHandler(guards middleware.GuardDeps, stores credstore.Factory, repo activity.Repository, notifier notify.Notifier) *SessionHandler {
	return &SessionHandler{guards: guards, stores: stores, activity: repo, notifier: notifier}
}

// Verify runs one guard check bound to the request context. A client that
// disconnects mid-check cancels the context and the outcome is discarded,
// mirroring an unmounted view.
func (h *SessionHandler) Verify(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	state := h.guards.NewGuard(sid).Run(c.UserContext())

	resp := fiber.Map{"state": state.String()}
	if state == guard.StateRejected {
		resp["redirect"] = guard.PublicEntryRoute
	}
	return respondData(c, resp)
}

// State reports guard-relevant session facts. The access token's expiry is
// decoded WITHOUT signature verification, purely for display; the trust
// decision stays with the upstream identity check.
func (h *SessionHandler) State(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	store := h.stores(sid)

	token := store.Read(c.UserContext(), credstore.FieldAccessToken)
	if token == "" {
		return respondData(c, fiber.Map{"has_credential": false})
	}

	resp := fiber.Map{"has_credential": true}
	if parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{}); err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			resp["expires_at"] = exp.UTC().Format(time.RFC3339)
		}
	}
	return respondData(c, resp)
}

type activityItem struct {
	Kind      string `json:"kind"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Activity lists the session's recent events, newest first.
func (h *SessionHandler) Activity(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	events, err := h.activity.ListRecent(c.UserContext(), sid, 20)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load activity")
	}
	items := make([]activityItem, 0, len(events))
	for _, event := range events {
		items = append(items, activityItem{
			Kind:      event.Kind,
			Detail:    event.Detail,
			CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return respondData(c, fiber.Map{"events": items})
}

// Toasts drains and returns the session's queued notifications.
func (h *SessionHandler) Toasts(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	messages, err := h.notifier.Drain(c.UserContext(), sid)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load notifications")
	}
	if messages == nil {
		messages = []notify.Message{}
	}
	return respondData(c, fiber.Map{"toasts": messages})
}

// RegisterSessionRoutes wires the session API.
func RegisterSessionRoutes(r fiber.Router, h *SessionHandler) {
	r.Post("/session/verify", h.Verify)
	r.Get("/session/state", h.State)
	r.Get("/session/activity", h.Activity)
	r.Get("/toasts", h.Toasts)
}
