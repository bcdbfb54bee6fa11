// Package router maps normalized text phrases and button ids to handlers.
package router

import (
	"context"
	"strings"

	"github.com/jdmarket/colibri/internal/domain"
)

// TextContext carries what a text command handler needs.
type TextContext struct {
	To         string
	MessageID  string
	SenderName string
	Session    *domain.Session
}

// ButtonContext carries what a button handler needs.
type ButtonContext struct {
	To        string
	ButtonID  string
	MessageID string
}

// TextHandler handles a matched text command.
type TextHandler func(ctx context.Context, tc TextContext) error

// ButtonHandler handles a matched button selection.
type ButtonHandler func(ctx context.Context, bc ButtonContext) error

// Router holds the command tables. It is built once at startup and is
// read-only afterwards, so lookups need no locking.
type Router struct {
	text    map[string]TextHandler
	buttons map[string]ButtonHandler
}

// New creates an empty command router.
func New() *Router {
	return &Router{
		text:    make(map[string]TextHandler),
		buttons: make(map[string]ButtonHandler),
	}
}

// RegisterText binds one or more phrases to a handler. Phrases are
// normalized (trimmed, lower-cased); a later registration for the same
// normalized phrase overwrites the earlier one.
func (r *Router) RegisterText(handler TextHandler, phrases ...string) {
	for _, p := range phrases {
		r.text[normalize(p)] = handler
	}
}

// RegisterButton binds a button id to a handler, exact match only.
func (r *Router) RegisterButton(id string, handler ButtonHandler) {
	r.buttons[id] = handler
}

// FindTextHandler normalizes raw and returns the bound handler, or nil.
func (r *Router) FindTextHandler(raw string) TextHandler {
	if raw == "" {
		return nil
	}
	return r.text[normalize(raw)]
}

// FindButtonHandler returns the handler for a button id, or nil.
func (r *Router) FindButtonHandler(id string) ButtonHandler {
	return r.buttons[id]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
