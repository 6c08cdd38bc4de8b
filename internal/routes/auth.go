package routes

import (
	"log/slog"
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

// Upstream wallet API endpoints consumed by the auth flows.
const (
	upstreamLogin       = "/api/v1/auth/login"
	upstreamLoginVerify = "/api/v1/auth/login/verify"
	upstreamRegister    = "/api/v1/auth/register"
	upstreamLogout      = "/api/v1/auth/logout"
)

// AuthHandler implements the sign-in, registration and sign-out form flows.
// Input is validated locally; the trust decision itself is upstream's.
type AuthHandler struct {
	client   *upstream.Client
	stores   credstore.Factory
	activity activity.Repository
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewAuthHandler builds the auth flow handler.
func NewAuthHandler(client *upstream.Client, stores credstore.Factory, repo activity.Repository, notifier notify.Notifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{client: client, stores: stores, activity: repo, notifier: notifier, logger: logger}
}

// Login handles the first sign-in step: email and password only.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req validate.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	input, violations := validate.ParseLogin(req)
	if len(violations) > 0 {
		return respondViolations(c, violations)
	}
	return h.authenticate(c, upstreamLogin, fiber.Map{
		"email":    input.Email,
		"password": input.Password,
	})
}

// LoginVerify handles the second sign-in step carrying the email code and an
// optional authenticator code.
func (h *AuthHandler) LoginVerify(c *fiber.Ctx) error {
	var req validate.LoginWithCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	input, violations := validate.ParseLoginWithCode(req)
	if len(violations) > 0 {
		return respondViolations(c, violations)
	}
	body := fiber.Map{
		"email":      input.Email,
		"password":   input.Password,
		"email_code": input.EmailCode,
	}
	if input.AuthenticatorCode != "" {
		body["authenticator_code"] = input.AuthenticatorCode
	}
	return h.authenticate(c, upstreamLoginVerify, body)
}

// Register handles account creation.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req validate.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	input, violations := validate.ParseRegistration(req)
	if len(violations) > 0 {
		return respondViolations(c, violations)
	}
	return h.authenticate(c, upstreamRegister, fiber.Map{
		"email":      input.Email,
		"password":   input.Password,
		"email_code": input.EmailCode,
	})
}

// authenticate runs one upstream auth call and, on success, persists the
// returned token material for the session.
func (h *AuthHandler) authenticate(c *fiber.Ctx, endpoint string, body fiber.Map) error {
	sid := middleware.SessionID(c)
	store := h.stores(sid)

	env, err := h.client.WithStore(store).Do(c.UserContext(), fiber.MethodPost, endpoint, body)
	if err != nil {
		return respondFailure(c, h.notifier, sid, err)
	}

	cred, err := upstream.Data[credstore.Credential](env)
	if err != nil {
		return respondFailure(c, h.notifier, sid, err)
	}
	if err := store.Persist(c.UserContext(), &cred); err != nil {
		h.logger.Error("persist credential", "session_id", sid, "error", err)
		return fiber.NewError(http.StatusInternalServerError, "could not persist session")
	}

	h.record(c, sid, activity.KindSignIn)
	return respondData(c, fiber.Map{"status": "signed_in"})
}

// Logout clears the stored credential. The upstream call is best effort: the
// local session ends either way.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	store := h.stores(sid)

	if _, err := h.client.WithStore(store).Do(c.UserContext(), fiber.MethodPost, upstreamLogout, struct{}{}); err != nil {
		h.logger.Warn("upstream logout", "session_id", sid, "error", err)
	}
	if err := store.Clear(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "could not clear session")
	}

	h.record(c, sid, activity.KindSignOut)
	return respondData(c, fiber.Map{"status": "signed_out"})
}

func (h *AuthHandler) record(c *fiber.Ctx, sid, kind string) {
	err := h.activity.Record(c.UserContext(), activity.Event{
		ID:        uuid.NewString(),
		SessionID: sid,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("record activity", "kind", kind, "error", err)
	}
}

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *AuthHandler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
		group.Post("/login/verify", rateLimiter, h.LoginVerify)
		group.Post("/register", rateLimiter, h.Register)
	} else {
		group.Post("/login", h.Login)
		group.Post("/login/verify", h.LoginVerify)
		group.Post("/register", h.Register)
	}
	group.Post("/logout", h.Logout)
}
