package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewChatSession_DefaultState(t *testing.T) {
	s := NewChatSession(1, 10, 800, 600)
	require.Equal(t, StateMainMenu, s.State)
	require.Equal(t, int64(1), s.UserID)
	require.Equal(t, int64(10), s.ChatID)
	require.Equal(t, 800, s.Width)
	require.Equal(t, 600, s.Height)
}

func TestChatSession_SetResolution(t *testing.T) {
	s := NewChatSession(1, 10, 800, 600)
	s.SetResolution(1024, 768)
	require.Equal(t, 1024, s.Width)
	require.Equal(t, 768, s.Height)
}
