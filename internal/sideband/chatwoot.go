package sideband

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
)

// ChatwootConfig holds the Chatwoot inbox credentials. The forwarder is
// inert unless all three fields are set.
type ChatwootConfig struct {
	BaseURL string
	Token   string
	InboxID string
}

// ChatwootForwarder pushes inbound events to a Chatwoot inbox so human
// agents can watch (and take over) conversations.
type ChatwootForwarder struct {
	cfg     ChatwootConfig
	enabled bool
	client  *http.Client
	log     *logging.Logger
}

// NewChatwootForwarder creates the forwarder. It stays disabled until
// base URL, token and inbox id are all configured.
func NewChatwootForwarder(cfg ChatwootConfig, log *logging.Logger) *ChatwootForwarder {
	enabled := cfg.BaseURL != "" && cfg.Token != "" && cfg.InboxID != ""
	l := log.Sub("chatwoot")
	l.Info().Bool("enabled", enabled).Msg("chatwoot forwarder configured")
	return &ChatwootForwarder{
		cfg:     cfg,
		enabled: enabled,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     l,
	}
}

// Enabled reports whether events will actually be pushed.
func (f *ChatwootForwarder) Enabled() bool { return f.enabled }

type chatwootMessage struct {
	SourceID    string `json:"source_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

// Forward pushes the event to the inbox. Errors are logged and dropped.
func (f *ChatwootForwarder) Forward(ctx context.Context, userID string, ev domain.InboundEvent) {
	if !f.enabled {
		return
	}

	content := ev.Body
	if ev.Kind == domain.EventButton {
		content = "[button] " + ev.ButtonID
	}
	if content == "" {
		return
	}

	payload, err := json.Marshal(chatwootMessage{
		SourceID:    userID,
		Content:     content,
		MessageType: "incoming",
	})
	if err != nil {
		f.log.Error().Err(err).Msg("marshaling chatwoot message")
		return
	}

	url := fmt.Sprintf("%s/api/v1/inboxes/%s/messages",
		strings.TrimRight(f.cfg.BaseURL, "/"), f.cfg.InboxID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		f.log.Error().Err(err).Msg("creating chatwoot request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_access_token", f.cfg.Token)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn().Err(err).Msg("chatwoot push failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		f.log.Warn().Int("status", resp.StatusCode).Msg("chatwoot rejected event")
	}
}
