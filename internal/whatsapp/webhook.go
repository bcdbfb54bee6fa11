package whatsapp

import "github.com/jdmarket/colibri/internal/domain"

// WebhookPayload mirrors the structure of WhatsApp Cloud API webhook callbacks.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry is one entry in a webhook body.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange carries the actual notification contents.
type WebhookChange struct {
	Value WebhookValue `json:"value"`
	Field string       `json:"field"`
}

// WebhookValue contains metadata, contacts and message or status events.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Metadata         Metadata         `json:"metadata"`
	Contacts         []Contact        `json:"contacts"`
	Messages         []InboundMessage `json:"messages"`
	Statuses         []MessageStatus  `json:"statuses"`
}

// Metadata identifies the business phone number the event belongs to.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is the WhatsApp user behind the conversation.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile carries the human-friendly contact name.
type ContactProfile struct {
	Name string `json:"name"`
}

// InboundMessage covers the inbound message shapes Colibri handles.
type InboundMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
}

// TextContent is the body of a text message.
type TextContent struct {
	Body string `json:"body"`
}

// InteractiveContent carries a button selection.
type InteractiveContent struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
}

// ButtonReply is the chosen option of an interactive button message.
type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MessageStatus is a delivery status update for an outbound message.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"` // sent | delivered | read | failed
	RecipientID string `json:"recipient_id"`
}

// Normalize flattens a webhook payload into the provider-independent events
// the dispatch engine consumes. Unknown message types become EventOther so
// the engine can log them without special-casing the wire format.
func (p *WebhookPayload) Normalize() []domain.InboundEvent {
	var events []domain.InboundEvent

	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			names := contactNames(change.Value.Contacts)

			for _, msg := range change.Value.Messages {
				ev := domain.InboundEvent{
					From:       msg.From,
					MessageID:  msg.ID,
					SenderName: names[msg.From],
				}
				switch {
				case msg.Type == "text" && msg.Text != nil:
					ev.Kind = domain.EventText
					ev.Body = msg.Text.Body
				case msg.Type == "interactive" && msg.Interactive != nil && msg.Interactive.ButtonReply != nil:
					ev.Kind = domain.EventButton
					ev.ButtonID = msg.Interactive.ButtonReply.ID
				default:
					ev.Kind = domain.EventOther
				}
				events = append(events, ev)
			}

			for _, st := range change.Value.Statuses {
				events = append(events, domain.InboundEvent{
					Kind:      domain.EventStatus,
					From:      st.RecipientID,
					MessageID: st.ID,
					Status:    st.Status,
				})
			}
		}
	}
	return events
}

func contactNames(contacts []Contact) map[string]string {
	if len(contacts) == 0 {
		return nil
	}
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.Profile.Name != "" {
			names[c.WaID] = c.Profile.Name
		}
	}
	return names
}
