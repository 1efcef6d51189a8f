package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursorcloak/cursorcloak/internal/config"
	"github.com/cursorcloak/cursorcloak/internal/coordinator"
)

func TestSetupLoggingLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	c, err := setupLogging("warn", "")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	c, err = setupLogging("nonsense", "")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupLoggingFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "cursorcloak.log")
	c, err := setupLogging("info", path)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSetupLoggingBadFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	c, err := setupLogging("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
	assert.NoError(t, c.Close())
}

func TestResolveOptionsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CURSORCLOAK_LOG_LEVEL", "error")
	t.Setenv("CURSORCLOAK_CONFIG", "env.ini")

	require.NoError(t, rootCmd.ParseFlags([]string{"--config", "flag.ini"}))
	defer func() {
		configPath = ""
		rootCmd.Flags().Lookup("config").Changed = false
	}()

	opts, err := resolveOptions(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "flag.ini", opts.ConfigPath)
	assert.Equal(t, "error", opts.LogLevel)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, version+"\n", out.String())
}

func TestHeadlessTracksVisibility(t *testing.T) {
	h := newHeadless(nil, config.DefaultSettings())
	h.OnVisibilityChanged(coordinator.Hidden)
	assert.True(t, h.Settings().HidingEnabled)
	h.OnVisibilityChanged(coordinator.Visible)
	assert.False(t, h.Settings().HidingEnabled)
	assert.Equal(t, config.DefaultSettings().AutoHideTimeoutSeconds, h.Settings().AutoHideTimeoutSeconds)
}

func TestHeadlessSavesEveryChange(t *testing.T) {
	store, err := config.NewStore(filepath.Join(t.TempDir(), "settings.ini"))
	require.NoError(t, err)
	h := newHeadless(store, config.DefaultSettings())

	h.OnVisibilityChanged(coordinator.Hidden)
	saved, err := store.Load()
	require.NoError(t, err)
	assert.True(t, saved.HidingEnabled)

	h.OnVisibilityChanged(coordinator.Visible)
	saved, err = store.Load()
	require.NoError(t, err)
	assert.False(t, saved.HidingEnabled)
}

type stubStopper struct {
	stops atomic.Int32
	done  chan struct{}
	// closeOnStop makes RequestShutdown finish Run immediately
	closeOnStop bool
}

func (s *stubStopper) RequestShutdown() {
	if s.stops.Add(1) == 1 && s.closeOnStop {
		close(s.done)
	}
}

func (s *stubStopper) Done() <-chan struct{} { return s.done }

type stubEngine struct {
	shows, cleanups atomic.Int32
}

func (e *stubEngine) Show() error    { e.shows.Add(1); return nil }
func (e *stubEngine) Cleanup() error { e.cleanups.Add(1); return nil }

func TestRestorePointerGoesThroughCoordinator(t *testing.T) {
	coord := &stubStopper{done: make(chan struct{}), closeOnStop: true}
	e := &stubEngine{}

	restorePointer(coord, e, time.Second)
	assert.EqualValues(t, 1, coord.stops.Load())
	assert.EqualValues(t, 0, e.shows.Load())
	assert.EqualValues(t, 0, e.cleanups.Load())
}

func TestRestorePointerFallsBackToEngine(t *testing.T) {
	coord := &stubStopper{done: make(chan struct{})}
	e := &stubEngine{}

	restorePointer(coord, e, 10*time.Millisecond)
	assert.EqualValues(t, 1, coord.stops.Load())
	assert.EqualValues(t, 1, e.shows.Load())
	assert.EqualValues(t, 1, e.cleanups.Load())

	restorePointer(nil, e, 0)
	assert.EqualValues(t, 2, e.shows.Load())
}
