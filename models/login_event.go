package models

import "time"

// LoginOutcome is the result of a completed callback
type LoginOutcome string

const (
	LoginAuthenticated LoginOutcome = "authenticated"
	LoginRejected      LoginOutcome = "rejected"
)

// LoginEvent records a single OpenID callback
type LoginEvent struct {
	ID         int64        `json:"id" db:"id"`
	OccurredAt time.Time    `json:"occurred_at" db:"occurred_at"`
	Email      string       `json:"email,omitempty" db:"email"`
	Outcome    LoginOutcome `json:"outcome" db:"outcome"`
	Reason     string       `json:"reason,omitempty" db:"reason"`
	UserAgent  string       `json:"user_agent,omitempty" db:"user_agent"`
	IPAddress  string       `json:"ip_address,omitempty" db:"ip_address"`
}
