// Package liveness ties asynchronous results to the view instance that asked
// for them. A result is applied only while its token is alive.
package liveness

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Token marks one mounted view instance.
type Token struct {
	id    string
	alive atomic.Bool
}

func (t *Token) ID() string { return t.id }

// Alive reports whether the view that issued the token is still mounted.
func (t *Token) Alive() bool {
	return t != nil && t.alive.Load()
}

// Revoke marks the token dead. It is idempotent.
func (t *Token) Revoke() {
	if t != nil {
		t.alive.Store(false)
	}
}

// Slot holds the token of the currently mounted instance of one view.
// Mounting again revokes the previous token.
type Slot struct {
	current *Token
}

// Mount revokes any previous token and returns a fresh live one.
func (s *Slot) Mount() *Token {
	s.current.Revoke()
	t := &Token{id: uuid.NewString()}
	t.alive.Store(true)
	s.current = t
	return t
}

// Unmount revokes the current token.
func (s *Slot) Unmount() {
	s.current.Revoke()
	s.current = nil
}

// Current returns the live token, or nil when nothing is mounted.
func (s *Slot) Current() *Token {
	if s.current.Alive() {
		return s.current
	}
	return nil
}
