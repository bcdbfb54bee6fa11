// Package whatsapp talks to the WhatsApp Cloud API: sending messages and
// parsing inbound webhook notifications.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
)

// Messenger delivers outbound send requests to the provider.
type Messenger interface {
	Send(ctx context.Context, req domain.OutboundRequest) error
}

// Client is the production Messenger posting to the Graph API.
type Client struct {
	baseURL       string
	apiVersion    string
	phoneNumberID string
	token         string
	client        *http.Client
	log           *logging.Logger
}

// ClientConfig holds the Graph API credentials for a business phone number.
type ClientConfig struct {
	APIToken      string
	PhoneNumberID string
	APIVersion    string
	BaseURL       string // override for tests; defaults to graph.facebook.com
}

// NewClient creates a Graph API send client.
func NewClient(cfg ClientConfig, log *logging.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://graph.facebook.com"
	}
	version := cfg.APIVersion
	if version == "" {
		version = "v21.0"
	}
	return &Client{
		baseURL:       strings.TrimRight(base, "/"),
		apiVersion:    version,
		phoneNumberID: cfg.PhoneNumberID,
		token:         cfg.APIToken,
		client:        &http.Client{Timeout: 120 * time.Second},
		log:           log.Sub("whatsapp"),
	}
}

// Send validates the request, builds the Graph payload for its kind, and
// posts it to the messages endpoint.
func (c *Client) Send(ctx context.Context, req domain.OutboundRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid %s request: %w", req.Kind, err)
	}

	payload, err := buildPayload(req)
	if err != nil {
		return err
	}
	return c.post(ctx, payload)
}

func buildPayload(req domain.OutboundRequest) (*sendPayload, error) {
	p := &sendPayload{MessagingProduct: "whatsapp", To: req.To}

	switch req.Kind {
	case domain.RequestText:
		p.Text = &textPayload{Body: req.Body}
		if req.ReplyToID != "" {
			p.Context = &contextPayload{MessageID: req.ReplyToID}
		}

	case domain.RequestButtons:
		buttons := make([]interactiveButton, len(req.Buttons))
		for i, b := range req.Buttons {
			buttons[i] = interactiveButton{Type: "reply", Reply: buttonReply(b)}
		}
		p.Type = "interactive"
		p.Interactive = &interactivePayload{
			Type:   "button",
			Body:   interactiveBody{Text: req.Body},
			Action: interactiveAction{Buttons: buttons},
		}

	case domain.RequestMedia:
		p.RecipientType = "individual"
		p.Type = string(req.MediaType)
		media := &mediaPayload{Link: req.MediaURL, Caption: req.Caption}
		switch req.MediaType {
		case domain.MediaImage:
			p.Image = media
		case domain.MediaAudio:
			media.Caption = "" // audio has no caption field
			p.Audio = media
		case domain.MediaVideo:
			p.Video = media
		case domain.MediaDocument:
			media.Filename = path.Base(req.MediaURL)
			p.Document = media
		}

	case domain.RequestLocation:
		p.Type = "location"
		p.Location = &locationPayload{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Name:      req.Location.Name,
			Address:   req.Location.Address,
		}

	case domain.RequestReadReceipt:
		p.To = ""
		p.Status = "read"
		p.MessageID = req.MessageID

	case domain.RequestTyping:
		p.To = ""
		p.Status = "read"
		p.MessageID = req.MessageID
		p.TypingIndicator = &typingPayload{Type: "text"}

	default:
		return nil, fmt.Errorf("unsupported request kind %q", req.Kind)
	}

	return p, nil
}

func (c *Client) post(ctx context.Context, payload *sendPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to graph api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed sendResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			return fmt.Errorf("graph api error %d (%s): %s",
				parsed.Error.Code, parsed.Error.Type, parsed.Error.Message)
		}
		return fmt.Errorf("graph api status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err == nil && len(parsed.Messages) > 0 {
		c.log.Debug().Str("messageId", parsed.Messages[0].ID).Msg("message accepted")
	}
	return nil
}
