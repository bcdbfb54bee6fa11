// Package engine orchestrates inbound events: it consults the session
// store and command table, delegates AI-mode questions, and issues the
// outbound sends for each conversation turn.
package engine

import (
	"context"

	"github.com/jdmarket/colibri/internal/ai"
	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/jdmarket/colibri/internal/router"
	"github.com/jdmarket/colibri/internal/session"
	"github.com/jdmarket/colibri/internal/sideband"
	"github.com/jdmarket/colibri/internal/whatsapp"
)

// iaExitWords leave AI mode and return the user to the menu.
var iaExitWords = map[string]bool{
	"salir":  true,
	"menu":   true,
	"volver": true,
}

// Engine is the session-aware dispatcher. Handle never fails: collaborator
// errors are logged and answered with fallback messages so the webhook
// endpoint can always acknowledge the provider.
type Engine struct {
	sessions  session.Store
	commands  *router.Router
	messenger whatsapp.Messenger
	asker     ai.Asker
	sideband  sideband.Forwarder
	log       *logging.Logger
}

// New builds an engine and registers the built-in command table.
// asker and forward may be nil; AI mode then answers with the apology text
// and sideband forwarding becomes a no-op.
func New(
	sessions session.Store,
	messenger whatsapp.Messenger,
	asker ai.Asker,
	forward sideband.Forwarder,
	log *logging.Logger,
) *Engine {
	e := &Engine{
		sessions:  sessions,
		commands:  router.New(),
		messenger: messenger,
		asker:     asker,
		sideband:  forward,
		log:       log.Sub("engine"),
	}
	e.registerCommands()
	return e
}

// Handle processes one inbound event end to end. It acknowledges the
// triggering message with a read receipt even when a handler fails.
func (e *Engine) Handle(ctx context.Context, ev domain.InboundEvent) {
	e.forwardSideband(ctx, ev)

	switch ev.Kind {
	case domain.EventStatus:
		e.log.Debug().
			Str("messageId", ev.MessageID).
			Str("status", ev.Status).
			Msg("delivery status")
		return
	case domain.EventOther:
		e.log.Debug().Str("from", ev.From).Msg("ignoring unsupported message type")
		return
	}

	if ev.From == "" || ev.MessageID == "" {
		e.log.Warn().
			Str("kind", string(ev.Kind)).
			Msg("event missing sender or message id, dropping")
		return
	}

	// The receipt must go out even if a handler panics; the webhook layer
	// always acknowledges the provider, so nothing may escape here.
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Any("panic", r).Str("from", ev.From).Msg("handler panicked")
		}
		e.send(context.WithoutCancel(ctx), domain.ReadReceiptRequest(ev.MessageID))
	}()

	sess, fresh := e.sessions.Get(ev.From)

	switch ev.Kind {
	case domain.EventText:
		e.handleText(ctx, ev, sess, fresh)
	case domain.EventButton:
		e.handleButton(ctx, ev)
	}
}

func (e *Engine) handleText(ctx context.Context, ev domain.InboundEvent, sess *domain.Session, fresh domain.SessionFreshness) {
	// An expired session means the conversation went quiet and restarted:
	// greet again instead of echoing a stale message.
	if fresh == domain.FreshnessExpired {
		e.greet(ctx, router.TextContext{
			To:         ev.From,
			MessageID:  ev.MessageID,
			SenderName: ev.SenderName,
			Session:    sess,
		})
		return
	}

	if sess.State == domain.StateIAMode {
		e.handleIAMode(ctx, ev)
		return
	}

	if h := e.commands.FindTextHandler(ev.Body); h != nil {
		tc := router.TextContext{
			To:         ev.From,
			MessageID:  ev.MessageID,
			SenderName: ev.SenderName,
			Session:    sess,
		}
		if err := h(ctx, tc); err != nil {
			e.log.Error().Err(err).Str("from", ev.From).Msg("text command failed")
		}
		return
	}

	e.send(ctx, domain.TextRequest(ev.From, "Echo: "+ev.Body, ev.MessageID))
}

func (e *Engine) handleIAMode(ctx context.Context, ev domain.InboundEvent) {
	if iaExitWords[normalizeBody(ev.Body)] {
		e.setState(ev.From, domain.StateIdle)
		e.send(ctx, domain.TextRequest(ev.From, msgIAExit, ""))
		e.sendMenu(ctx, ev.From)
		return
	}

	// Best-effort: a failed typing indicator must not stop the answer.
	e.send(ctx, domain.TypingRequest(ev.MessageID))

	answer, err := e.askAI(ctx, ev.Body)
	if err != nil {
		e.log.Error().Err(err).Str("from", ev.From).Msg("AI query failed")
		e.send(ctx, domain.TextRequest(ev.From, msgIAApology, ev.MessageID))
		return
	}
	e.send(ctx, domain.TextRequest(ev.From, answer, ev.MessageID))
}

func (e *Engine) handleButton(ctx context.Context, ev domain.InboundEvent) {
	h := e.commands.FindButtonHandler(ev.ButtonID)
	if h == nil {
		e.log.Info().Str("button", ev.ButtonID).Msg("unrecognized button")
		e.send(ctx, domain.TextRequest(ev.From, msgUnknownOption, ev.MessageID))
		return
	}

	bc := router.ButtonContext{To: ev.From, ButtonID: ev.ButtonID, MessageID: ev.MessageID}
	if err := h(ctx, bc); err != nil {
		e.log.Error().Err(err).Str("button", ev.ButtonID).Msg("button command failed")
	}
}

func (e *Engine) askAI(ctx context.Context, question string) (string, error) {
	if e.asker == nil {
		return "", &ai.ProviderError{Provider: "none", Message: "no AI provider configured"}
	}
	return e.asker.Ask(ctx, question)
}

// forwardSideband hands the event to the sideband collaborator without
// waiting for it. The result is intentionally discarded.
func (e *Engine) forwardSideband(ctx context.Context, ev domain.InboundEvent) {
	if e.sideband == nil {
		return
	}
	go e.sideband.Forward(context.WithoutCancel(ctx), ev.From, ev)
}

// send delivers one outbound request, logging failures instead of
// propagating them.
func (e *Engine) send(ctx context.Context, req domain.OutboundRequest) {
	if err := e.messenger.Send(ctx, req); err != nil {
		e.log.Error().Err(err).
			Str("kind", string(req.Kind)).
			Str("to", req.To).
			Msg("outbound send failed")
	}
}

func (e *Engine) setState(userID string, state domain.SessionState) {
	e.sessions.Update(userID, domain.SessionPatch{State: &state})
}
