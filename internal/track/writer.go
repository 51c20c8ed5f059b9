// Package track accumulates accepted events into an in-memory SMF track and
// serializes it in one pass when the session ends.
package track

import (
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leandrodaf/pianorec/internal/timing"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Writer builds one session track at a fixed tempo. Begin, Append and Save
// are only ever called from the processing loop.
type Writer struct {
	ticksPerBeat uint16
	tempoUS      uint32

	track  smf.Track
	open   bool
	events int

	prev  time.Time
	first time.Time
	last  time.Time
}

// NewWriter creates a writer for the given resolution and tempo.
func NewWriter(ticksPerBeat uint16, tempoMicroseconds uint32) *Writer {
	return &Writer{ticksPerBeat: ticksPerBeat, tempoUS: tempoMicroseconds}
}

// Begin starts a fresh track seeded with the fixed tempo entry. The seed is
// not counted as musical content.
func (w *Writer) Begin() {
	w.track = smf.Track{}
	w.track.Add(0, smf.MetaTempo(60_000_000.0/float64(w.tempoUS)))
	w.open = true
	w.events = 0
	w.prev = time.Time{}
	w.first = time.Time{}
	w.last = time.Time{}
}

// Append commits one accepted event, computing its tick delta against the
// previously committed event's arrival time. Events with no SMF encoding are
// dropped silently; realtime kinds never reach the writer.
func (w *Writer) Append(ev contracts.Event) {
	if !w.open {
		return
	}
	msg, ok := message(ev)
	if !ok {
		return
	}
	delta := timing.DeltaTicks(w.prev, ev.Timestamp, w.ticksPerBeat, w.tempoUS)
	w.track.Add(delta, msg)
	w.prev = ev.Timestamp
	if w.first.IsZero() {
		w.first = ev.Timestamp
	}
	w.last = ev.Timestamp
	w.events++
}

// Len reports the number of committed musical events, excluding the seed
// tempo entry.
func (w *Writer) Len() int {
	return w.events
}

// Duration is the span between the first and last committed event.
func (w *Writer) Duration() time.Duration {
	if w.first.IsZero() {
		return 0
	}
	return w.last.Sub(w.first)
}

// Save finalizes the track and writes it to path as a single-track SMF.
// The file appears only once the whole track is ready; nothing partial is
// ever left on disk.
func (w *Writer) Save(path string) error {
	w.track.Close(0)
	file := smf.New()
	file.TimeFormat = smf.MetricTicks(w.ticksPerBeat)
	if err := file.Add(w.track); err != nil {
		return err
	}
	return file.WriteFile(path)
}

// Discard drops the in-memory track.
func (w *Writer) Discard() {
	w.track = nil
	w.open = false
}

func message(ev contracts.Event) (midi.Message, bool) {
	switch ev.Kind {
	case contracts.NoteOnEvent:
		return midi.NoteOn(ev.Channel, ev.Note, ev.Velocity), true
	case contracts.NoteOffEvent:
		return midi.NoteOff(ev.Channel, ev.Note), true
	case contracts.ControlChangeEvent:
		return midi.ControlChange(ev.Channel, ev.Note, ev.Velocity), true
	case contracts.PitchBendEvent:
		absolute := uint16(ev.Velocity)<<7 | uint16(ev.Note)
		return midi.Pitchbend(ev.Channel, int16(absolute)-8192), true
	}
	return nil, false
}
