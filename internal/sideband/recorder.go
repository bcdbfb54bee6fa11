package sideband

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/jdmarket/colibri/internal/store"
)

// Recorder writes inbound events to the SQLite transcript table. Like all
// sideband consumers it is best-effort: insert failures are logged only.
type Recorder struct {
	db  *store.DB
	log *logging.Logger
}

// NewRecorder creates a transcript recorder on the given database.
func NewRecorder(db *store.DB, log *logging.Logger) *Recorder {
	return &Recorder{db: db, log: log.Sub("transcript")}
}

func (r *Recorder) Forward(ctx context.Context, userID string, ev domain.InboundEvent) {
	_, err := r.db.SQL().ExecContext(ctx,
		`INSERT INTO transcript (id, user_id, kind, message_id, body, button_id, status, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), userID, string(ev.Kind),
		ev.MessageID, ev.Body, ev.ButtonID, ev.Status,
		time.Now().UTC().Format(time.DateTime),
	)
	if err != nil {
		r.log.Error().Err(err).Str("user", userID).Msg("failed to record event")
	}
}

// Recent returns up to limit transcript rows for a user, newest first.
// Used by the ops endpoints; limit of 0 defaults to 50.
func (r *Recorder) Recent(ctx context.Context, userID string, limit int) ([]TranscriptRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.SQL().QueryContext(ctx,
		`SELECT id, user_id, kind, message_id, body, button_id, status, received_at
		 FROM transcript WHERE user_id = ?
		 ORDER BY received_at DESC, id LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TranscriptRow
	for rows.Next() {
		var t TranscriptRow
		var receivedAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.MessageID,
			&t.Body, &t.ButtonID, &t.Status, &receivedAt); err != nil {
			continue
		}
		t.ReceivedAt, _ = time.Parse(time.DateTime, receivedAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

// TranscriptRow is one recorded inbound event.
type TranscriptRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Kind       string    `json:"kind"`
	MessageID  string    `json:"messageId,omitempty"`
	Body       string    `json:"body,omitempty"`
	ButtonID   string    `json:"buttonId,omitempty"`
	Status     string    `json:"status,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}
