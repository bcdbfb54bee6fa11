package domain

import (
	"fmt"
	"unicode/utf8"
)

// RequestKind discriminates the outbound send request union.
type RequestKind string

const (
	RequestText        RequestKind = "text"
	RequestButtons     RequestKind = "buttons"
	RequestMedia       RequestKind = "media"
	RequestLocation    RequestKind = "location"
	RequestTyping      RequestKind = "typing"
	RequestReadReceipt RequestKind = "read"
)

// MediaType enumerates supported outbound media kinds.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaAudio    MediaType = "audio"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// Button is one reply option on an interactive message.
type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Location is a point-of-interest payload.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
}

// OutboundRequest describes one message to deliver through the provider.
// Which fields are meaningful depends on Kind.
type OutboundRequest struct {
	Kind      RequestKind `json:"kind"`
	To        string      `json:"to,omitempty"`
	Body      string      `json:"body,omitempty"`      // text, buttons body
	ReplyToID string      `json:"replyToId,omitempty"` // text: threads the reply
	Buttons   []Button    `json:"buttons,omitempty"`
	MediaType MediaType   `json:"mediaType,omitempty"`
	MediaURL  string      `json:"mediaUrl,omitempty"`
	Caption   string      `json:"caption,omitempty"`
	Location  *Location   `json:"location,omitempty"`
	MessageID string      `json:"messageId,omitempty"` // typing, read receipt
}

// maxButtonTitle is the provider limit on button titles.
const maxButtonTitle = 20

// Validate checks provider constraints that would be rejected at send time.
func (r OutboundRequest) Validate() error {
	switch r.Kind {
	case RequestButtons:
		if len(r.Buttons) == 0 || len(r.Buttons) > 3 {
			return fmt.Errorf("interactive message needs 1-3 buttons, got %d", len(r.Buttons))
		}
		for _, b := range r.Buttons {
			if b.ID == "" {
				return fmt.Errorf("button with empty id")
			}
			if utf8.RuneCountInString(b.Title) > maxButtonTitle {
				return fmt.Errorf("button title %q exceeds %d characters", b.Title, maxButtonTitle)
			}
		}
	case RequestMedia:
		switch r.MediaType {
		case MediaImage, MediaAudio, MediaVideo, MediaDocument:
		default:
			return fmt.Errorf("unsupported media type %q", r.MediaType)
		}
		if r.MediaURL == "" {
			return fmt.Errorf("media request without url")
		}
	case RequestReadReceipt, RequestTyping:
		if r.MessageID == "" {
			return fmt.Errorf("%s request without message id", r.Kind)
		}
	}
	return nil
}

// TextRequest builds a plain text send, optionally threaded to a message id.
func TextRequest(to, body, replyToID string) OutboundRequest {
	return OutboundRequest{Kind: RequestText, To: to, Body: body, ReplyToID: replyToID}
}

// ButtonsRequest builds an interactive reply-button send.
func ButtonsRequest(to, body string, buttons []Button) OutboundRequest {
	return OutboundRequest{Kind: RequestButtons, To: to, Body: body, Buttons: buttons}
}

// MediaRequest builds a media send.
func MediaRequest(to string, mt MediaType, url, caption string) OutboundRequest {
	return OutboundRequest{Kind: RequestMedia, To: to, MediaType: mt, MediaURL: url, Caption: caption}
}

// LocationRequest builds a location send.
func LocationRequest(to string, loc Location) OutboundRequest {
	return OutboundRequest{Kind: RequestLocation, To: to, Location: &loc}
}

// TypingRequest builds a typing indicator for the given inbound message.
func TypingRequest(messageID string) OutboundRequest {
	return OutboundRequest{Kind: RequestTyping, MessageID: messageID}
}

// ReadReceiptRequest builds a read receipt for the given inbound message.
func ReadReceiptRequest(messageID string) OutboundRequest {
	return OutboundRequest{Kind: RequestReadReceipt, MessageID: messageID}
}
