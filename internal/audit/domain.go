package audit

import "time"

// Auth event actions.
const (
	ActionLoginSucceeded       = "login_succeeded"
	ActionLoginFailed          = "login_failed"
	ActionImpersonationStarted = "impersonation_started"
	ActionImpersonationStopped = "impersonation_stopped"
)

// Event is one entry in the auth trail. UserID is nil when the email never
// resolved to an account.
type Event struct {
	ID        int64
	UserID    *int64
	Email     string
	Action    string
	Detail    string
	IP        string
	UserAgent string
	CreatedAt time.Time
}
