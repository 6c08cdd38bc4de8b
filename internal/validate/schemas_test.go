package validate

import (
	"encoding/json"
	"testing"
)

func violatesField(v Violations, field string) bool {
	for _, violation := range v {
		if violation.Field == field {
			return true
		}
	}
	return false
}

func TestParseLoginPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"accepts mixed case with digit", "Abcdef12", true},
		{"rejects missing uppercase", "alllower1", false},
		{"rejects missing lowercase", "ALLUPPER1", false},
		{"rejects missing digit", "NoDigitsHere", false},
		{"rejects short password", "Ab1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, v := ParseLogin(LoginRequest{Email: "user@example.com", Password: tc.password})
			if tc.ok && len(v) != 0 {
				t.Fatalf("expected valid, got violations %v", v)
			}
			if !tc.ok && !violatesField(v, "password") {
				t.Fatalf("expected password violation, got %v", v)
			}
		})
	}
}

func TestParseLoginTrimsAndValidatesEmail(t *testing.T) {
	login, v := ParseLogin(LoginRequest{Email: "  user@example.com ", Password: "Abcdef12"})
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if login.Email != "user@example.com" {
		t.Fatalf("expected trimmed email, got %q", login.Email)
	}

	if _, v := ParseLogin(LoginRequest{Email: "not-an-email", Password: "Abcdef12"}); !violatesField(v, "email") {
		t.Fatalf("expected email violation, got %v", v)
	}
}

func TestParseLoginWithCodeRevalidatesBase(t *testing.T) {
	// A bad base password must fail even when the code is fine.
	_, v := ParseLoginWithCode(LoginWithCodeRequest{
		LoginRequest: LoginRequest{Email: "user@example.com", Password: "alllower1"},
		EmailCode:    "123456",
	})
	if !violatesField(v, "password") {
		t.Fatalf("expected base password re-validation, got %v", v)
	}

	_, v = ParseLoginWithCode(LoginWithCodeRequest{
		LoginRequest: LoginRequest{Email: "user@example.com", Password: "Abcdef12"},
	})
	if !violatesField(v, "email_code") {
		t.Fatalf("expected email_code violation, got %v", v)
	}

	parsed, v := ParseLoginWithCode(LoginWithCodeRequest{
		LoginRequest:      LoginRequest{Email: "user@example.com", Password: "Abcdef12"},
		EmailCode:         " 123456 ",
		AuthenticatorCode: "654321",
	})
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if parsed.EmailCode != "123456" || parsed.AuthenticatorCode != "654321" {
		t.Fatalf("unexpected parsed codes: %+v", parsed)
	}
}

func TestParseRegistrationRequiresEmailCode(t *testing.T) {
	_, v := ParseRegistration(RegistrationRequest{
		LoginRequest: LoginRequest{Email: "user@example.com", Password: "Abcdef12"},
	})
	if !violatesField(v, "email_code") {
		t.Fatalf("expected email_code violation, got %v", v)
	}
}

func TestParseSend(t *testing.T) {
	if _, v := ParseSend(SendRequest{Email: "recipient@example.com"}); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if _, v := ParseSend(SendRequest{Email: ""}); !violatesField(v, "email") {
		t.Fatalf("expected email violation, got %v", v)
	}
}

func TestParseWithdrawalAmountCoercion(t *testing.T) {
	parsed, v := ParseWithdrawal(WithdrawalRequest{Address: "addr-123456", Amount: "10.5"})
	if len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if parsed.Amount != 10.5 {
		t.Fatalf("expected coerced amount 10.5, got %v", parsed.Amount)
	}

	if _, v := ParseWithdrawal(WithdrawalRequest{Address: "addr-123456", Amount: "5"}); !violatesField(v, "amount") {
		t.Fatalf("expected below-minimum violation, got %v", v)
	}
	if _, v := ParseWithdrawal(WithdrawalRequest{Address: "addr-123456", Amount: "abc"}); !violatesField(v, "amount") {
		t.Fatalf("expected non-numeric violation, got %v", v)
	}
	if _, v := ParseWithdrawal(WithdrawalRequest{Address: "addr-123456", Amount: "-4"}); !violatesField(v, "amount") {
		t.Fatalf("expected non-positive violation, got %v", v)
	}
}

func TestParseWithdrawalAddressLength(t *testing.T) {
	if _, v := ParseWithdrawal(WithdrawalRequest{Address: " ab12 ", Amount: "25"}); !violatesField(v, "address") {
		t.Fatalf("expected address violation, got %v", v)
	}
}

func TestFlexNumberAcceptsNumberAndString(t *testing.T) {
	var req WithdrawalRequest
	if err := json.Unmarshal([]byte(`{"address":"addr-123456","amount":12.5}`), &req); err != nil {
		t.Fatalf("unmarshal numeric amount: %v", err)
	}
	if parsed, v := ParseWithdrawal(req); len(v) != 0 || parsed.Amount != 12.5 {
		t.Fatalf("expected 12.5, got %+v (%v)", parsed, v)
	}

	if err := json.Unmarshal([]byte(`{"address":"addr-123456","amount":"17"}`), &req); err != nil {
		t.Fatalf("unmarshal string amount: %v", err)
	}
	if parsed, v := ParseWithdrawal(req); len(v) != 0 || parsed.Amount != 17 {
		t.Fatalf("expected 17, got %+v (%v)", parsed, v)
	}
}
