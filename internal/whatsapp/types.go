package whatsapp

// Graph API request payloads for the /{phone_number_id}/messages endpoint.

type textPayload struct {
	Body string `json:"body"`
}

type contextPayload struct {
	MessageID string `json:"message_id"`
}

type buttonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type interactiveButton struct {
	Type  string      `json:"type"` // always "reply"
	Reply buttonReply `json:"reply"`
}

type interactiveAction struct {
	Buttons []interactiveButton `json:"buttons"`
}

type interactiveBody struct {
	Text string `json:"text"`
}

type interactivePayload struct {
	Type   string            `json:"type"` // always "button"
	Body   interactiveBody   `json:"body"`
	Action interactiveAction `json:"action"`
}

type mediaPayload struct {
	Link     string `json:"link"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
}

// sendPayload is the full request body. Exactly one content field is set,
// matching the Type discriminator.
type sendPayload struct {
	MessagingProduct string              `json:"messaging_product"`
	RecipientType    string              `json:"recipient_type,omitempty"`
	To               string              `json:"to,omitempty"`
	Type             string              `json:"type,omitempty"`
	Text             *textPayload        `json:"text,omitempty"`
	Interactive      *interactivePayload `json:"interactive,omitempty"`
	Image            *mediaPayload       `json:"image,omitempty"`
	Audio            *mediaPayload       `json:"audio,omitempty"`
	Video            *mediaPayload       `json:"video,omitempty"`
	Document         *mediaPayload       `json:"document,omitempty"`
	Location         *locationPayload    `json:"location,omitempty"`
	Context          *contextPayload     `json:"context,omitempty"`

	// Read receipt / typing indicator fields.
	Status          string         `json:"status,omitempty"` // "read"
	MessageID       string         `json:"message_id,omitempty"`
	TypingIndicator *typingPayload `json:"typing_indicator,omitempty"`
}

type typingPayload struct {
	Type string `json:"type"` // always "text"
}

// sendResponse is the subset of the Graph API response we care about.
type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}
