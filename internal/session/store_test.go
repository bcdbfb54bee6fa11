package session

import (
	"testing"
	"time"

	"github.com/jdmarket/colibri/internal/domain"
	"github.com/jdmarket/colibri/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(0, logging.New(nil, "silent"))
}

func TestGet_FirstAccessCreatesIdleSession(t *testing.T) {
	s := testStore(t)

	sess, fresh := s.Get("573001112233")
	require.NotNil(t, sess)
	assert.Equal(t, domain.FreshnessNew, fresh)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.Equal(t, "573001112233", sess.UserID)
	assert.Equal(t, sess.CreatedAt, sess.LastActive)
}

func TestGet_SecondAccessIsLive(t *testing.T) {
	s := testStore(t)

	s.Get("u1")
	_, fresh := s.Get("u1")
	assert.Equal(t, domain.FreshnessLive, fresh)
}

func TestGet_ExpiredSessionReplaced(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	old, _ := s.Get("u1")
	greeted := domain.StateGreeted
	s.Update("u1", domain.SessionPatch{State: &greeted})

	// Jump past the idle timeout.
	s.now = func() time.Time { return base.Add(DefaultIdleTimeout + time.Second) }

	sess, fresh := s.Get("u1")
	assert.Equal(t, domain.FreshnessExpired, fresh)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.CreatedAt.After(old.LastActive))
}

func TestGet_ActivityKeepsSessionAlive(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.Get("u1")

	// Touch the session every 5 minutes; it must never expire.
	for i := 1; i <= 4; i++ {
		offset := time.Duration(i) * 5 * time.Minute
		s.now = func() time.Time { return base.Add(offset) }
		_, fresh := s.Get("u1")
		assert.Equal(t, domain.FreshnessLive, fresh)
	}
}

func TestUpdate_MergesData(t *testing.T) {
	s := testStore(t)

	s.Update("u1", domain.SessionPatch{Data: map[string]any{"a": 1}})
	sess := s.Update("u1", domain.SessionPatch{Data: map[string]any{"b": 2}})

	assert.Equal(t, 1, sess.Data["a"])
	assert.Equal(t, 2, sess.Data["b"])
}

func TestUpdate_StateOnlyLeavesData(t *testing.T) {
	s := testStore(t)

	s.Update("u1", domain.SessionPatch{Data: map[string]any{"topic": "laptops"}})
	ia := domain.StateIAMode
	sess := s.Update("u1", domain.SessionPatch{State: &ia})

	assert.Equal(t, domain.StateIAMode, sess.State)
	assert.Equal(t, "laptops", sess.Data["topic"])
}

func TestReset_NextGetCreates(t *testing.T) {
	s := testStore(t)

	greeted := domain.StateGreeted
	s.Update("u1", domain.SessionPatch{State: &greeted})
	s.Reset("u1")

	sess, fresh := s.Get("u1")
	assert.Equal(t, domain.FreshnessNew, fresh)
	assert.Equal(t, domain.StateIdle, sess.State)
}

func TestDump_SnapshotsAllSessions(t *testing.T) {
	s := testStore(t)
	s.Get("u1")
	s.Get("u2")

	dump := s.Dump()
	assert.Len(t, dump, 2)
}

func TestOnePerUser(t *testing.T) {
	s := testStore(t)

	a, _ := s.Get("u1")
	b, _ := s.Get("u1")
	assert.Same(t, a, b)
}
