package recorder

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

type scriptedSource struct {
	mu      sync.Mutex
	ports   []string
	deliver func(contracts.Event)
	closed  bool
}

func (s *scriptedSource) Ports() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ports, nil
}

func (s *scriptedSource) Open(name string, fn func(contracts.Event)) (contracts.Connection, error) {
	s.mu.Lock()
	s.deliver = fn
	s.mu.Unlock()
	return &scriptedConn{name: name}, nil
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// emit plays one event into the registered callback, as the hardware
// delivery context would.
func (s *scriptedSource) emit(ev contracts.Event) bool {
	s.mu.Lock()
	deliver := s.deliver
	s.mu.Unlock()
	if deliver == nil {
		return false
	}
	deliver(ev)
	return true
}

type scriptedConn struct {
	name string
}

func (c *scriptedConn) Name() string { return c.name }
func (c *scriptedConn) Close() error { return nil }

type silentPower struct{}

func (silentPower) SetSaving(bool) error { return nil }

type flagNotifier struct {
	mu    sync.Mutex
	ready bool
}

func (n *flagNotifier) Ready() {
	n.mu.Lock()
	n.ready = true
	n.mu.Unlock()
}

func (n *flagNotifier) Alive() {}

func (n *flagNotifier) wasReady() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ready
}

func TestRecorderCapturesASessionEndToEnd(t *testing.T) {
	baseDir := t.TempDir()
	src := &scriptedSource{ports: []string{"Test Piano"}}
	notifier := &flagNotifier{}

	rec, err := New(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithBaseDir(baseDir),
		contracts.WithPortHint("pia"),
		contracts.WithEventSource(src),
		contracts.WithPowerManager(silentPower{}),
		contracts.WithNotifier(notifier),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = rec.Run(ctx)
		close(done)
	}()

	// The watcher scans immediately on startup; wait for it to connect.
	require.Eventually(t, func() bool {
		return src.emit(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Velocity: 90, Timestamp: time.Now()})
	}, 2*time.Second, 5*time.Millisecond)
	src.emit(contracts.Event{Kind: contracts.NoteOffEvent, Note: 60, Timestamp: time.Now()})

	// Give the control loop a moment to drain, then shut down; the open
	// session must be flushed on the way out.
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder did not stop after cancellation")
	}

	assert.True(t, notifier.wasReady())
	assert.True(t, src.closed)

	files, err := filepath.Glob(filepath.Join(baseDir, "*", "*", "*", "session_*.mid"))
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestNewAppliesDefaults(t *testing.T) {
	rec, err := New(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithEventSource(&scriptedSource{}),
		contracts.WithPowerManager(silentPower{}),
		contracts.WithNotifier(&flagNotifier{}),
	)
	require.NoError(t, err)

	assert.Equal(t, "pia", rec.options.PortHint)
	assert.Equal(t, 5*time.Second, rec.options.SessionTimeout)
	assert.Equal(t, time.Second, rec.options.ShortcutTimeout)
	assert.Equal(t, uint8(22), rec.options.LowNote)
	assert.Equal(t, uint8(106), rec.options.HighNote)
	assert.Equal(t, uint16(480), rec.options.TicksPerBeat)
	assert.Equal(t, uint32(500_000), rec.options.TempoUS)
	assert.NotNil(t, rec.options.Paths)
}
