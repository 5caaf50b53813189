package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_MountRevokesPrevious(t *testing.T) {
	var s Slot
	assert.Nil(t, s.Current())

	first := s.Mount()
	require.True(t, first.Alive())

	second := s.Mount()
	assert.False(t, first.Alive())
	assert.True(t, second.Alive())
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Same(t, second, s.Current())
}

func TestSlot_Unmount(t *testing.T) {
	var s Slot
	tok := s.Mount()
	s.Unmount()

	assert.False(t, tok.Alive())
	assert.Nil(t, s.Current())

	// Unmounting twice is harmless.
	s.Unmount()
}

func TestToken_NilIsDead(t *testing.T) {
	var tok *Token
	assert.False(t, tok.Alive())
	tok.Revoke()
}
