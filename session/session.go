// Package session keeps a record for every actor known to the detector: its movement window, its
// violation levels and its preferences as an observer of other actors' violations.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/oomph-ac/ascent/actor"
	"github.com/oomph-ac/ascent/movement"
	"github.com/oomph-ac/ascent/oerror"
	"github.com/oomph-ac/ascent/violation"
)

// Session is the record of a single actor.
type Session struct {
	identity actor.Identity

	// Movement is only ever accessed from the actor's own tick path.
	Movement   *movement.State
	Violations *violation.Data

	mu        sync.RWMutex
	messenger violation.Messenger

	perms     atomic.Uint64
	listening atomic.Bool
	muted     atomic.Bool
}

func newSession(identity actor.Identity) *Session {
	return &Session{
		identity:   identity,
		Movement:   movement.NewState(),
		Violations: violation.NewData(),
	}
}

// Identity ...
func (s *Session) Identity() actor.Identity {
	return s.identity
}

// Target returns the session as the target of a violation.
func (s *Session) Target() violation.Target {
	return violation.Target{Identity: s.identity, Data: s.Violations}
}

// Message sends msg to the actor of the session. It returns an error if the session cannot receive messages.
func (s *Session) Message(msg string) error {
	s.mu.RLock()
	m := s.messenger
	s.mu.RUnlock()
	if m == nil {
		return oerror.New("session %s cannot receive messages", s.identity)
	}
	return m.Message(msg)
}

// CanMessage returns true if the session has a messenger to receive messages through.
func (s *Session) CanMessage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messenger != nil
}

func (s *Session) setMessenger(m violation.Messenger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messenger = m
}

// Verbose returns true if the session listens for debug information.
func (s *Session) Verbose() bool {
	return s.listening.Load()
}

// Listening ...
func (s *Session) Listening() bool {
	return s.listening.Load()
}

// Muted ...
func (s *Session) Muted() bool {
	return s.muted.Load()
}

// reset clears all state of the session that may outlive its removal from the Manager.
func (s *Session) reset() {
	s.listening.Store(false)
	s.muted.Store(false)
	s.perms.Store(0)
	s.setMessenger(nil)
	s.Violations.ClearAll()
}
