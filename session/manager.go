package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/metrics"
	"github.com/oomph-ac/ascent/oerror"
	"github.com/oomph-ac/ascent/violation"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

const shardCount = 32

var (
	listenOnMessage  = text.Colourf("<green>You will now receive debug info.</green>")
	listenOffMessage = text.Colourf("<green>You will no longer receive debug info.</green>")
	unmuteMessage    = text.Colourf("<green>Violations have been turned on.</green>")
	muteMessage      = text.Colourf("<red>Violations have been turned off.</red>")
)

type shard struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// Manager owns the sessions of all actors. Sessions are spread over shards by the hash of their ID, so
// that actors ticked in parallel only contend with actors in the same shard.
type Manager struct {
	log    *logrus.Logger
	shards [shardCount]shard
}

// NewManager ...
func NewManager(log *logrus.Logger) *Manager {
	m := &Manager{log: log}
	for i := range m.shards {
		m.shards[i].sessions = make(map[uuid.UUID]*Session)
	}
	return m
}

func (m *Manager) shard(id uuid.UUID) *shard {
	return &m.shards[xxh3.Hash(id[:])%shardCount]
}

// Connect registers the actor passed with the messenger and permissions it can be reached with. Connecting
// an actor that already has a session updates that session and returns it.
func (m *Manager) Connect(identity actor.Identity, messenger violation.Messenger, perms uint64) *Session {
	s := m.Acquire(identity)
	s.setMessenger(messenger)
	s.perms.Store(perms)
	m.log.Debugf("%s connected with permissions %b", identity, perms)
	return s
}

// Acquire returns the session of the actor passed, creating one without messenger or permissions if the
// actor was never connected.
func (m *Manager) Acquire(identity actor.Identity) *Session {
	sh := m.shard(identity.ID)
	sh.mu.RLock()
	s, ok := sh.sessions[identity.ID]
	sh.mu.RUnlock()
	if ok {
		return s
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if s, ok = sh.sessions[identity.ID]; ok {
		return s
	}
	s = newSession(identity)
	sh.sessions[identity.ID] = s
	metrics.Sessions.Inc()
	return s
}

// Session returns the session of the actor with the ID passed, if it has one.
func (m *Manager) Session(id uuid.UUID) (*Session, bool) {
	sh := m.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[id]
	return s, ok
}

// Disconnect removes the session of the actor with the ID passed, along with its observer preferences.
// It returns false if the actor had no session.
func (m *Manager) Disconnect(id uuid.UUID) bool {
	sh := m.shard(id)
	sh.mu.Lock()
	s, ok := sh.sessions[id]
	delete(sh.sessions, id)
	sh.mu.Unlock()
	if !ok {
		return false
	}

	s.reset()
	metrics.Sessions.Dec()
	m.log.Debugf("%s disconnected", s.identity)
	return true
}

// Len returns the amount of sessions.
func (m *Manager) Len() int {
	n := 0
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mu.RLock()
		n += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return n
}

// Observers returns every session allowed to receive notifications that has not muted them.
func (m *Manager) Observers() []violation.Observer {
	var observers []violation.Observer
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mu.RLock()
		for _, s := range sh.sessions {
			if s.HasPerm(PermissionAlerts) && !s.Muted() && s.CanMessage() {
				observers = append(observers, s)
			}
		}
		sh.mu.RUnlock()
	}
	return observers
}

// ToggleListener flips whether the session with the ID passed receives debug information with its
// notifications and returns the new state.
func (m *Manager) ToggleListener(id uuid.UUID) (bool, error) {
	s, ok := m.Session(id)
	if !ok {
		return false, oerror.New("no session for %s", id)
	}
	for {
		old := s.listening.Load()
		if s.listening.CompareAndSwap(old, !old) {
			m.confirm(s, !old, listenOnMessage, listenOffMessage)
			return !old, nil
		}
	}
}

// SetListener sets whether the session with the ID passed receives debug information. Setting the state
// the session already has does nothing.
func (m *Manager) SetListener(id uuid.UUID, listening bool) error {
	s, ok := m.Session(id)
	if !ok {
		return oerror.New("no session for %s", id)
	}
	if s.listening.CompareAndSwap(!listening, listening) {
		m.confirm(s, listening, listenOnMessage, listenOffMessage)
	}
	return nil
}

// ToggleMute flips whether the session with the ID passed is excluded from notifications and returns the
// new state.
func (m *Manager) ToggleMute(id uuid.UUID) (bool, error) {
	s, ok := m.Session(id)
	if !ok {
		return false, oerror.New("no session for %s", id)
	}
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			m.confirm(s, !old, muteMessage, unmuteMessage)
			return !old, nil
		}
	}
}

// SetMuted sets whether the session with the ID passed is excluded from notifications. Setting the state
// the session already has does nothing.
func (m *Manager) SetMuted(id uuid.UUID, muted bool) error {
	s, ok := m.Session(id)
	if !ok {
		return oerror.New("no session for %s", id)
	}
	if s.muted.CompareAndSwap(!muted, muted) {
		m.confirm(s, muted, muteMessage, unmuteMessage)
	}
	return nil
}

func (m *Manager) confirm(s *Session, state bool, on, off string) {
	if !s.CanMessage() {
		return
	}
	msg := off
	if state {
		msg = on
	}
	if err := s.Message(msg); err != nil {
		m.log.Errorf("failed sending confirmation to %s: %v", s.identity, err)
	}
}
