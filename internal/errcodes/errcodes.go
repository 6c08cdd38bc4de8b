// Package errcodes centralizes the translation of upstream error codes into
// user-facing messages. Call sites must never match on raw code strings;
// they ask this vocabulary instead.
package errcodes

// FallbackMessage is shown for any code without a mapping.
const FallbackMessage = "Something went wrong. Please try again."

var messages = map[string]string{
	"member.not":           "Account not found.",
	"member.exist":         "An account with this email already exists.",
	"member.disabled":      "This account has been disabled. Contact support.",
	"password.wrong":       "Incorrect email or password.",
	"code.wrong":           "The verification code is incorrect.",
	"code.expired":         "The verification code has expired. Request a new one.",
	"authenticator.wrong":  "The authenticator code is incorrect.",
	"balance.insufficient": "Insufficient balance for this operation.",
	"address.invalid":      "The destination address is not valid.",
	"withdrawal.limit":     "This withdrawal exceeds your current limit.",
	"auth.expired":         "Your session has expired. Please sign in again.",
	"request.limit":        "Too many attempts. Please wait and try again.",
	"card.not":             "Card not found.",
	"card.frozen":          "This card is frozen.",
}

// suppressed lists codes that are genuine failures but must never be shown
// to the user, even though a translation may exist.
var suppressed = map[string]struct{}{
	"unknown.error": {},
	"auth.check":    {},
}

// Translate returns the user-facing message for code, or the generic
// fallback for unmapped codes.
func Translate(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return FallbackMessage
}

// IsSuppressed reports whether code must be swallowed rather than surfaced.
// Callers check this before displaying any translated message.
func IsSuppressed(code string) bool {
	_, ok := suppressed[code]
	return ok
}
