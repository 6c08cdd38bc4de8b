package validate

import (
	"strconv"
	"strings"
)

const (
	minPasswordLength = 8
	minAddressLength  = 6
	minWithdrawal     = 10
)

// LoginRequest is the raw login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the validated login input.
type Login struct {
	Email    string
	Password string
}

// ParseLogin validates the base credential pair.
func ParseLogin(req LoginRequest) (Login, Violations) {
	var v Violations

	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		v.add("email", "Enter a valid email address.")
	}

	password := req.Password
	switch {
	case len(password) < minPasswordLength:
		v.add("password", "Password must be at least 8 characters.")
	case !containsUpper(password):
		v.add("password", "Password must contain an uppercase letter.")
	case !containsLower(password):
		v.add("password", "Password must contain a lowercase letter.")
	case !containsDigit(password):
		v.add("password", "Password must contain a digit.")
	}

	if len(v) > 0 {
		return Login{}, v
	}
	return Login{Email: email, Password: password}, nil
}

// LoginWithCodeRequest extends the login payload with an email verification
// code and an optional authenticator code.
type LoginWithCodeRequest struct {
	LoginRequest
	EmailCode         string `json:"email_code"`
	AuthenticatorCode string `json:"authenticator_code"`
}

// LoginWithCode is the validated second-step login input.
type LoginWithCode struct {
	Login
	EmailCode         string
	AuthenticatorCode string
}

// ParseLoginWithCode re-validates every base field plus the additions; the
// extension never bypasses the base schema.
func ParseLoginWithCode(req LoginWithCodeRequest) (LoginWithCode, Violations) {
	base, v := ParseLogin(req.LoginRequest)

	emailCode := strings.TrimSpace(req.EmailCode)
	if emailCode == "" {
		v.add("email_code", "Enter the code sent to your email.")
	}

	if len(v) > 0 {
		return LoginWithCode{}, v
	}
	return LoginWithCode{
		Login:             base,
		EmailCode:         emailCode,
		AuthenticatorCode: strings.TrimSpace(req.AuthenticatorCode),
	}, nil
}

// RegistrationRequest is the raw registration payload.
type RegistrationRequest struct {
	LoginRequest
	EmailCode string `json:"email_code"`
}

// Registration is the validated registration input.
type Registration struct {
	Login
	EmailCode string
}

// ParseRegistration validates registration input: the full login schema plus
// the email verification code.
func ParseRegistration(req RegistrationRequest) (Registration, Violations) {
	base, v := ParseLogin(req.LoginRequest)

	emailCode := strings.TrimSpace(req.EmailCode)
	if emailCode == "" {
		v.add("email_code", "Enter the code sent to your email.")
	}

	if len(v) > 0 {
		return Registration{}, v
	}
	return Registration{Login: base, EmailCode: emailCode}, nil
}

// SendRequest is the raw recipient payload for sending funds.
type SendRequest struct {
	Email string `json:"email"`
}

// Send is the validated recipient input.
type Send struct {
	Email string
}

// ParseSend validates the recipient email.
func ParseSend(req SendRequest) (Send, Violations) {
	var v Violations
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		v.add("email", "Enter a valid email address.")
	}
	if len(v) > 0 {
		return Send{}, v
	}
	return Send{Email: email}, nil
}

// WithdrawalRequest is the raw withdrawal payload. Amount tolerates both a
// JSON number and a numeric string.
type WithdrawalRequest struct {
	Address string     `json:"address"`
	Amount  FlexNumber `json:"amount"`
}

// Withdrawal is the validated withdrawal input with the amount coerced to a
// number.
type Withdrawal struct {
	Address string
	Amount  float64
}

// ParseWithdrawal validates the destination address and coerces the amount.
// Non-numeric amounts yield a violation, never an error or panic.
func ParseWithdrawal(req WithdrawalRequest) (Withdrawal, Violations) {
	var v Violations

	address := strings.TrimSpace(req.Address)
	if len(address) < minAddressLength {
		v.add("address", "Enter a valid address.")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(string(req.Amount)), 64)
	switch {
	case err != nil:
		v.add("amount", "Enter a numeric amount.")
	case amount <= 0:
		v.add("amount", "Amount must be greater than zero.")
	case amount < minWithdrawal:
		v.add("amount", "Minimum withdrawal amount is 10.")
	}

	if len(v) > 0 {
		return Withdrawal{}, v
	}
	return Withdrawal{Address: address, Amount: amount}, nil
}
