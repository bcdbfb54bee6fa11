// Package domain holds the core types shared across Colibri's packages.
package domain

// EventKind classifies a normalized inbound webhook event.
type EventKind string

const (
	EventText   EventKind = "text"
	EventButton EventKind = "button"
	EventStatus EventKind = "status"
	EventOther  EventKind = "other"
)

// InboundEvent is the provider-independent form of a webhook notification
// consumed by the dispatch engine.
type InboundEvent struct {
	Kind       EventKind `json:"kind"`
	From       string    `json:"from"`
	MessageID  string    `json:"messageId,omitempty"`
	Body       string    `json:"body,omitempty"`     // kind=text
	ButtonID   string    `json:"buttonId,omitempty"` // kind=button
	SenderName string    `json:"senderName,omitempty"`
	Status     string    `json:"status,omitempty"` // kind=status (sent/delivered/read/failed)
}
