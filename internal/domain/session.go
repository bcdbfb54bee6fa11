package domain

import "time"

// SessionState is the conversational mode a user is in.
type SessionState string

const (
	// StateIdle is the initial state; text is routed through the command table.
	StateIdle SessionState = "idle"
	// StateGreeted means the welcome message and menu have been sent.
	StateGreeted SessionState = "greeted"
	// StateIAMode means free text is forwarded to the AI product assistant.
	StateIAMode SessionState = "ia_mode"
)

// SessionFreshness reports what a session lookup did.
type SessionFreshness int

const (
	// FreshnessLive means an existing, non-expired session was returned.
	FreshnessLive SessionFreshness = iota
	// FreshnessNew means this lookup created the user's first session.
	FreshnessNew
	// FreshnessExpired means an expired session was replaced with a fresh one.
	FreshnessExpired
)

// Session tracks a conversation with a single WhatsApp user.
type Session struct {
	UserID     string         `json:"userId"`
	State      SessionState   `json:"state"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	LastActive time.Time      `json:"lastActive"`
}

// SessionPatch is a partial update applied to a session. A nil State leaves
// the state untouched; Data entries are merged key-wise into the existing map.
type SessionPatch struct {
	State *SessionState
	Data  map[string]any
}
