package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingReturnsDefaults(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "settings.ini"))
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), got)
	assert.Equal(t, 5, got.AutoHideTimeoutSeconds)
}

func TestStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CursorCloak", "settings.ini")
	s, err := NewStore(path)
	require.NoError(t, err)

	want := Settings{
		HidingEnabled:          true,
		AutoHideEnabled:        true,
		AutoHideTimeoutSeconds: 12,
		StartWithWindows:       true,
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[auto_hide]")
	assert.Contains(t, string(data), "timeout_seconds")
}

func TestStoreClampsTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	s, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(Settings{AutoHideTimeoutSeconds: 0}))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, got.AutoHideTimeoutSeconds)

	require.NoError(t, os.WriteFile(path, []byte("[auto_hide]\nenabled = true\ntimeout_seconds = -4\n"), 0644))
	got, err = s.Load()
	require.NoError(t, err)
	assert.True(t, got.AutoHideEnabled)
	assert.Equal(t, 1, got.AutoHideTimeoutSeconds)
}

func TestStoreLoadToleratesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[cursor]\nhiding_enabled = maybe\n[auto_hide]\ntimeout_seconds = soon\n"), 0644))

	s, err := NewStore(path)
	require.NoError(t, err)
	got, err := s.Load()
	require.NoError(t, err)
	assert.False(t, got.HidingEnabled)
	assert.Equal(t, DefaultTimeoutSeconds, got.AutoHideTimeoutSeconds)
}

func TestLoadOptions(t *testing.T) {
	t.Setenv("CURSORCLOAK_LOG_LEVEL", "debug")
	t.Setenv("CURSORCLOAK_NO_TRAY", "true")
	t.Setenv("CURSORCLOAK_CONFIG", "/tmp/cc.ini")

	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.True(t, opts.NoTray)
	assert.Equal(t, "/tmp/cc.ini", opts.ConfigPath)
	assert.Empty(t, opts.LogFile)
}

func TestLoadOptionsDefaults(t *testing.T) {
	t.Setenv("CURSORCLOAK_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("CURSORCLOAK_LOG_LEVEL"))
	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, "info", opts.LogLevel)
}
