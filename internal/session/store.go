// Package session owns per-user conversational state with idle expiry.
package session

import (
	"sync"
	"time"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
)

// DefaultIdleTimeout is how long a session survives without activity.
const DefaultIdleTimeout = 10 * time.Minute

// Store manages conversational sessions keyed by WhatsApp user id.
// Operations never fail; a lookup always yields a usable session.
type Store interface {
	// Get returns the user's session, creating a fresh idle one when none
	// exists or the previous one expired. The freshness value tells the
	// caller whether this call created or replaced the session.
	Get(userID string) (*domain.Session, domain.SessionFreshness)

	// Update applies a partial patch (state and/or merged data) to the
	// user's session, creating it first if needed, and refreshes LastActive.
	Update(userID string, patch domain.SessionPatch) *domain.Session

	// Reset removes the user's session unconditionally.
	Reset(userID string)

	// Dump returns a snapshot of all live sessions, for ops inspection.
	Dump() []domain.Session
}

// MemoryStore is the in-process Store implementation. State lives for the
// lifetime of the process only.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	timeout  time.Duration
	now      func() time.Time
	log      *logging.Logger
}

// NewMemoryStore creates a memory store with the given idle timeout.
// A timeout of 0 uses DefaultIdleTimeout.
func NewMemoryStore(timeout time.Duration, log *logging.Logger) *MemoryStore {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		timeout:  timeout,
		now:      time.Now,
		log:      log.Sub("session"),
	}
}

func (s *MemoryStore) Get(userID string) (*domain.Session, domain.SessionFreshness) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID)
}

func (s *MemoryStore) getLocked(userID string) (*domain.Session, domain.SessionFreshness) {
	now := s.now()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = s.fresh(userID, now)
		s.sessions[userID] = sess
		s.log.Debug().Str("user", userID).Msg("session created")
		return sess, domain.FreshnessNew
	}

	if now.Sub(sess.LastActive) > s.timeout {
		sess = s.fresh(userID, now)
		s.sessions[userID] = sess
		s.log.Debug().Str("user", userID).Msg("expired session replaced")
		return sess, domain.FreshnessExpired
	}

	sess.LastActive = now
	return sess, domain.FreshnessLive
}

func (s *MemoryStore) Update(userID string, patch domain.SessionPatch) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.getLocked(userID)
	if patch.State != nil {
		sess.State = *patch.State
	}
	for k, v := range patch.Data {
		if sess.Data == nil {
			sess.Data = make(map[string]any)
		}
		sess.Data[k] = v
	}
	sess.LastActive = s.now()
	return sess
}

func (s *MemoryStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	s.log.Debug().Str("user", userID).Msg("session reset")
}

func (s *MemoryStore) Dump() []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, *sess)
	}
	return out
}

func (s *MemoryStore) fresh(userID string, now time.Time) *domain.Session {
	return &domain.Session{
		UserID:     userID,
		State:      domain.StateIdle,
		Data:       make(map[string]any),
		CreatedAt:  now,
		LastActive: now,
	}
}
