package sideband

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/jdmarket/colibri/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logging.Logger {
	return logging.New(nil, "silent")
}

func TestChatwoot_DisabledWithoutCredentials(t *testing.T) {
	f := NewChatwootForwarder(ChatwootConfig{}, testLogger())
	assert.False(t, f.Enabled())

	// Must be a silent no-op.
	f.Forward(context.Background(), "u1", domain.InboundEvent{Kind: domain.EventText, Body: "hola"})
}

func TestChatwoot_PushesInboundText(t *testing.T) {
	var got chatwootMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inboxes/7/messages", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("api_access_token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewChatwootForwarder(ChatwootConfig{BaseURL: srv.URL, Token: "tok", InboxID: "7"}, testLogger())
	require.True(t, f.Enabled())

	f.Forward(context.Background(), "573001112233", domain.InboundEvent{
		Kind: domain.EventText, From: "573001112233", Body: "hola",
	})

	assert.Equal(t, "573001112233", got.SourceID)
	assert.Equal(t, "hola", got.Content)
	assert.Equal(t, "incoming", got.MessageType)
}

func TestChatwoot_ButtonEventContent(t *testing.T) {
	var got chatwootMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	f := NewChatwootForwarder(ChatwootConfig{BaseURL: srv.URL, Token: "t", InboxID: "1"}, testLogger())
	f.Forward(context.Background(), "u1", domain.InboundEvent{
		Kind: domain.EventButton, ButtonID: "soporte",
	})

	assert.Equal(t, "[button] soporte", got.Content)
}

func TestRecorder_RoundTrip(t *testing.T) {
	db, err := store.Open(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := NewRecorder(db, testLogger())
	ctx := context.Background()

	r.Forward(ctx, "u1", domain.InboundEvent{
		Kind: domain.EventText, From: "u1", MessageID: "wamid.1", Body: "hola",
	})
	r.Forward(ctx, "u1", domain.InboundEvent{
		Kind: domain.EventButton, From: "u1", MessageID: "wamid.2", ButtonID: "asesor",
	})
	r.Forward(ctx, "u2", domain.InboundEvent{
		Kind: domain.EventStatus, From: "u2", MessageID: "wamid.3", Status: "read",
	})

	rows, err := r.Recent(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "u1", row.UserID)
	}

	other, err := r.Recent(ctx, "u2", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "read", other[0].Status)
}

func TestMulti_FansOut(t *testing.T) {
	var calls []string
	mk := func(name string) Forwarder {
		return forwarderFunc(func(_ context.Context, userID string, _ domain.InboundEvent) {
			calls = append(calls, name+":"+userID)
		})
	}

	m := Multi{mk("a"), mk("b")}
	m.Forward(context.Background(), "u1", domain.InboundEvent{Kind: domain.EventText})

	assert.Equal(t, []string{"a:u1", "b:u1"}, calls)
}

// forwarderFunc adapts a function to the Forwarder interface.
type forwarderFunc func(ctx context.Context, userID string, ev domain.InboundEvent)

func (f forwarderFunc) Forward(ctx context.Context, userID string, ev domain.InboundEvent) {
	f(ctx, userID, ev)
}
