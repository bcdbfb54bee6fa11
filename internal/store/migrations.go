package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create transcript",
		SQL: `
			CREATE TABLE transcript (
				id          TEXT PRIMARY KEY,
				user_id     TEXT NOT NULL,
				kind        TEXT NOT NULL,
				message_id  TEXT NOT NULL DEFAULT '',
				body        TEXT NOT NULL DEFAULT '',
				button_id   TEXT NOT NULL DEFAULT '',
				status      TEXT NOT NULL DEFAULT '',
				received_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_transcript_user ON transcript (user_id, received_at);
			CREATE INDEX idx_transcript_message ON transcript (message_id);
		`,
	},
}
