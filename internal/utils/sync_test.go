package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMutexDisabled(t *testing.T) {
	var m OptionalMutex
	m.Lock()
	require.True(t, m.TryLock())
	m.Unlock()
	m.Unlock()
}

func TestOptionalMutexEnabled(t *testing.T) {
	m := OptionalMutex{UseMutex: true}
	m.Lock()
	require.False(t, m.TryLock())
	m.Unlock()
	require.True(t, m.TryLock())
	m.Unlock()
}

func TestOptionalRWMutexReaders(t *testing.T) {
	m := OptionalRWMutex{UseMutex: true}
	m.RLock()
	m.RLock()
	require.False(t, m.TryLock())
	m.RUnlock()
	m.RUnlock()
	require.True(t, m.TryLock())
	m.Unlock()
}
