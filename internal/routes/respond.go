package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/meridianpay/dashboard/internal/errcodes"
	"github.com/meridianpay/dashboard/internal/notify"
	"github.com/meridianpay/dashboard/internal/upstream"
	"github.com/meridianpay/dashboard/internal/validate"
)

// The gateway mirrors the upstream envelope shape so the SPA handles one
// response format end to end.

func respondData(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"code": 200, "data": data})
}

func respondViolations(c *fiber.Ctx, v validate.Violations) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"code":    "validation.failed",
		"message": "Please correct the highlighted fields.",
		"data":    fiber.Map{"violations": v},
	})
}

// respondFailure translates an upstream failure for the SPA. API errors get
// vocabulary treatment: suppressed codes produce no toast and no message,
// everything else produces a toast with the translated text. Transport and
// decode failures collapse into a generic retryable answer.
func respondFailure(c *fiber.Ctx, notifier notify.Notifier, sid string, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		message := ""
		if !errcodes.IsSuppressed(apiErr.Code) {
			message = errcodes.Translate(apiErr.Code)
			_ = notifier.Push(c.UserContext(), sid, notify.Message{Kind: notify.KindError, Text: message})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"code": apiErr.Code, "message": message})
	}

	_ = notifier.Push(c.UserContext(), sid, notify.Message{Kind: notify.KindError, Text: errcodes.FallbackMessage})
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"code":    "upstream.unavailable",
		"message": errcodes.FallbackMessage,
	})
}
