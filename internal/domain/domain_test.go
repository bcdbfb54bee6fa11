package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboundRequest_Validate_Buttons(t *testing.T) {
	tests := []struct {
		name    string
		buttons []Button
		wantErr bool
	}{
		{
			name:    "three valid buttons",
			buttons: []Button{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}},
		},
		{
			name:    "no buttons",
			buttons: nil,
			wantErr: true,
		},
		{
			name: "four buttons",
			buttons: []Button{
				{ID: "a", Title: "A"}, {ID: "b", Title: "B"},
				{ID: "c", Title: "C"}, {ID: "d", Title: "D"},
			},
			wantErr: true,
		},
		{
			name:    "title too long",
			buttons: []Button{{ID: "a", Title: "this title is far too long for a button"}},
			wantErr: true,
		},
		{
			name:    "empty id",
			buttons: []Button{{ID: "", Title: "A"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ButtonsRequest("123", "pick one", tt.buttons)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutboundRequest_Validate_Media(t *testing.T) {
	req := MediaRequest("123", MediaDocument, "https://example.com/f.pdf", "here")
	require.NoError(t, req.Validate())

	bad := MediaRequest("123", MediaType("sticker"), "https://example.com/s", "")
	assert.Error(t, bad.Validate())

	noURL := MediaRequest("123", MediaImage, "", "")
	assert.Error(t, noURL.Validate())
}

func TestOutboundRequest_Validate_Receipts(t *testing.T) {
	assert.NoError(t, ReadReceiptRequest("wamid.1").Validate())
	assert.Error(t, ReadReceiptRequest("").Validate())
	assert.NoError(t, TypingRequest("wamid.1").Validate())
	assert.Error(t, OutboundRequest{Kind: RequestTyping}.Validate())
}
