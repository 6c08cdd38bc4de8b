package activity

import "time"

// Event kinds recorded against a session.
const (
	KindSignIn              = "signin"
	KindSignOut             = "signout"
	KindRejected            = "rejected"
	KindWithdrawalRequested = "withdrawal_requested"
	KindSendRequested       = "send_requested"
)

// Event is one entry in a session's activity feed.
type Event struct {
	ID        string
	SessionID string
	Kind      string
	Detail    string
	CreatedAt time.Time
}
