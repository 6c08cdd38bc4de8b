package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meridianpay/dashboard/internal/activity"
	"github.com/meridianpay/dashboard/internal/credstore"
	"github.com/meridianpay/dashboard/internal/middleware"
	"github.com/meridianpay/dashboard/internal/notify"
	"github.com/meridianpay/dashboard/internal/upstream"
	"github.com/meridianpay/dashboard/internal/validate"
)

const (
	upstreamSend     = "/api/v1/wallet/send"
	upstreamWithdraw = "/api/v1/wallet/withdraw"
)

// WalletHandler implements the money-moving form flows: sending to a
// recipient by email and withdrawing to an external address.
type WalletHandler struct {
	client   *upstream.Client
	stores   credstore.Factory
	activity activity.Repository
	notifier notify.Notifier
}

// NewWalletHandler builds the wallet flow handler.
func NewWalletHandler(client *upstream.Client, stores credstore.Factory, repo activity.Repository, notifier notify.Notifier) *WalletHandler {
	return &WalletHandler{client: client, stores: stores, activity: repo, notifier: notifier}
}

// Send validates the recipient and forwards the request upstream.
func (h *WalletHandler) Send(c *fiber.Ctx) error {
	var req validate.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	input, violations := validate.ParseSend(req)
	if len(violations) > 0 {
		return respondViolations(c, violations)
	}

	sid := middleware.SessionID(c)
	store := h.stores(sid)
	env, err := h.client.WithStore(store).Do(c.UserContext(), fiber.MethodPost, upstreamSend, fiber.Map{
		"email": input.Email,
	})
	if err != nil {
		return respondFailure(c, h.notifier, sid, err)
	}

	h.record(c, sid, activity.KindSendRequested, input.Email)
	return respondData(c, json.RawMessage(env.Data))
}

// Withdraw validates the address and coerced amount, then forwards the
// request upstream.
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	var req validate.WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	input, violations := validate.ParseWithdrawal(req)
	if len(violations) > 0 {
		return respondViolations(c, violations)
	}

	sid := middleware.SessionID(c)
	store := h.stores(sid)
	env, err := h.client.WithStore(store).Do(c.UserContext(), fiber.MethodPost, upstreamWithdraw, fiber.Map{
		"address": input.Address,
		"amount":  input.Amount,
	})
	if err != nil {
		return respondFailure(c, h.notifier, sid, err)
	}

	h.record(c, sid, activity.KindWithdrawalRequested, input.Address)
	_ = h.notifier.Push(c.UserContext(), sid, notify.Message{Kind: notify.KindInfo, Text: "Withdrawal submitted."})
	return respondData(c, json.RawMessage(env.Data))
}

func (h *WalletHandler) record(c *fiber.Ctx, sid, kind, detail string) {
	_ = h.activity.Record(c.UserContext(), activity.Event{
		ID:        uuid.NewString(),
		SessionID: sid,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
}

// RegisterWalletRoutes wires the money-moving endpoints. The idempotency
// middleware, when present, replays duplicate submissions.
func RegisterWalletRoutes(r fiber.Router, h *WalletHandler, idem fiber.Handler) {
	group := r.Group("/wallet")
	if idem != nil {
		group.Post("/send", idem, h.Send)
		group.Post("/withdraw", idem, h.Withdraw)
	} else {
		group.Post("/send", h.Send)
		group.Post("/withdraw", h.Withdraw)
	}
}
