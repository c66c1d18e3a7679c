package domain

import "time"

// AuthEventType names the credential operation an AuthEvent records.
type AuthEventType string

const (
	EventRegister AuthEventType = "register"
	EventLogin    AuthEventType = "login"
	EventLogout   AuthEventType = "logout"
)

// AuthEvent is an audit record of a credential operation. It never carries
// the submitted secret.
type AuthEvent struct {
	Type    AuthEventType
	Email   string
	UserID  string
	Outcome string // "success" or the failure reason
	At      time.Time
}
