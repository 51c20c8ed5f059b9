package track

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

const (
	ticksPerBeat = uint16(480)
	tempoUS      = uint32(500_000)
)

func TestWriterRoundTrip(t *testing.T) {
	base := time.Now()
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()

	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Channel: 0, Note: 60, Velocity: 100, Timestamp: base})
	w.Append(contracts.Event{Kind: contracts.NoteOffEvent, Channel: 0, Note: 60, Timestamp: base.Add(500 * time.Millisecond)})
	w.Append(contracts.Event{Kind: contracts.ControlChangeEvent, Channel: 0, Note: 64, Velocity: 127, Timestamp: base.Add(time.Second)})
	assert.Equal(t, 3, w.Len())

	path := filepath.Join(t.TempDir(), "roundtrip.mid")
	require.NoError(t, w.Save(path))

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)

	type decoded struct {
		delta uint32
		kind  contracts.EventKind
		note  uint8
		value uint8
	}
	var got []decoded
	var tempoBPM float64
	for _, ev := range file.Tracks[0] {
		var channel, key, velocity uint8
		switch {
		case ev.Message.GetMetaTempo(&tempoBPM):
		case ev.Message.GetNoteOn(&channel, &key, &velocity):
			got = append(got, decoded{ev.Delta, contracts.NoteOnEvent, key, velocity})
		case ev.Message.GetNoteOff(&channel, &key, &velocity):
			got = append(got, decoded{ev.Delta, contracts.NoteOffEvent, key, velocity})
		case ev.Message.GetControlChange(&channel, &key, &velocity):
			got = append(got, decoded{ev.Delta, contracts.ControlChangeEvent, key, velocity})
		}
	}

	assert.InDelta(t, 120.0, tempoBPM, 0.01)
	require.Len(t, got, 3)
	assert.Equal(t, decoded{0, contracts.NoteOnEvent, 60, 100}, got[0])
	assert.Equal(t, uint32(480), got[1].delta)
	assert.Equal(t, contracts.NoteOffEvent, got[1].kind)
	assert.Equal(t, decoded{480, contracts.ControlChangeEvent, 64, 127}, got[2])
}

func TestWriterRoundTripsPitchBend(t *testing.T) {
	base := time.Now()
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()

	// Value bytes for a bend of +100 from center.
	absolute := uint16(8192 + 100)
	w.Append(contracts.Event{
		Kind:      contracts.PitchBendEvent,
		Channel:   2,
		Note:      uint8(absolute & 0x7F),
		Velocity:  uint8(absolute >> 7),
		Timestamp: base,
	})
	require.Equal(t, 1, w.Len())

	path := filepath.Join(t.TempDir(), "bend.mid")
	require.NoError(t, w.Save(path))

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	var channel uint8
	var relative int16
	var abs uint16
	for _, ev := range file.Tracks[0] {
		if ev.Message.GetPitchBend(&channel, &relative, &abs) {
			assert.Equal(t, uint8(2), channel)
			assert.Equal(t, int16(100), relative)
			return
		}
	}
	t.Fatal("pitch bend not found in track")
}

func TestWriterFirstEventDeltaIsZero(t *testing.T) {
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Timestamp: time.Now().Add(time.Hour)})
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, time.Duration(0), w.Duration())
}

func TestWriterClampsBackwardsTimestamps(t *testing.T) {
	base := time.Now()
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Timestamp: base})
	// Buffered shortcut events can arrive with timestamps older than the
	// last committed event; they must land at delta zero, never negative.
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 61, Timestamp: base.Add(-time.Second)})

	path := filepath.Join(t.TempDir(), "clamped.mid")
	require.NoError(t, w.Save(path))

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	var channel, key, velocity uint8
	for _, ev := range file.Tracks[0] {
		if ev.Message.GetNoteOn(&channel, &key, &velocity) && key == 61 {
			assert.Equal(t, uint32(0), ev.Delta)
			return
		}
	}
	t.Fatal("clamped event not found in track")
}

func TestWriterSeedTempoNotCounted(t *testing.T) {
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	assert.Equal(t, 0, w.Len())
}

func TestWriterIgnoresAppendsWhenClosed(t *testing.T) {
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	w.Discard()
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Timestamp: time.Now()})
	assert.Equal(t, 0, w.Len())
}

func TestWriterDuration(t *testing.T) {
	base := time.Now()
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Timestamp: base})
	w.Append(contracts.Event{Kind: contracts.NoteOffEvent, Note: 60, Timestamp: base.Add(2 * time.Second)})
	assert.Equal(t, 2*time.Second, w.Duration())
}

func TestWriterBeginResetsState(t *testing.T) {
	base := time.Now()
	w := NewWriter(ticksPerBeat, tempoUS)
	w.Begin()
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 60, Timestamp: base})
	w.Begin()
	assert.Equal(t, 0, w.Len())

	// The previous session's timestamps must not bleed into the new one.
	w.Append(contracts.Event{Kind: contracts.NoteOnEvent, Note: 62, Timestamp: base.Add(10 * time.Second)})
	path := filepath.Join(t.TempDir(), "reset.mid")
	require.NoError(t, w.Save(path))

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	var channel, key, velocity uint8
	for _, ev := range file.Tracks[0] {
		if ev.Message.GetNoteOn(&channel, &key, &velocity) {
			assert.Equal(t, uint32(0), ev.Delta)
		}
	}
	_ = os.Remove(path)
}
