// Package sideband forwards copies of inbound events to secondary
// consumers (support inbox, transcript) without touching the main flow.
package sideband

import (
	"context"

	"github.com/jdmarket/colibri/internal/domain"
)

// Forwarder receives a copy of every inbound event. Implementations are
// best-effort: there is no error return because the dispatch engine
// discards the result by contract — failures are logged internally.
type Forwarder interface {
	Forward(ctx context.Context, userID string, ev domain.InboundEvent)
}

// Multi fans an event out to several forwarders in order.
type Multi []Forwarder

func (m Multi) Forward(ctx context.Context, userID string, ev domain.InboundEvent) {
	for _, f := range m {
		f.Forward(ctx, userID, ev)
	}
}
