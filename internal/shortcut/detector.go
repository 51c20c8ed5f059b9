// Package shortcut recognizes triple-tap gestures on reserved note values.
// A performer striking one of the two watched notes three times within the
// tap timeout ends the current session without those notes reaching the
// saved file; isolated presses are eventually flushed back into the session
// as ordinary musical content.
package shortcut

import (
	"time"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// BookmarkSuffix is appended to the filename of sessions ended by the high
// reserved note. The low reserved note ends sessions with no suffix.
const BookmarkSuffix = "-bookmark"

// Result is the outcome of feeding one event to the detector pair.
type Result struct {
	// Handled reports that the event was consumed (buffered as a possible
	// gesture tap) and must not be written by the caller.
	Handled bool
	// Flush holds previously buffered events that turned out not to be part
	// of a gesture. The caller writes them as ordinary content, in order,
	// before the current event.
	Flush []contracts.Event
	// Triggered reports that a gesture completed on this event. The caller
	// must clear the ingestion queue and stop the session, discarding the
	// detector buffers.
	Triggered bool
	// Suffix is the filename suffix of the completed gesture.
	Suffix string
}

// detector tracks tap state for a single reserved note.
type detector struct {
	note    uint8
	suffix  string
	timeout time.Duration

	taps    int
	buffer  []contracts.Event
	lastTap time.Time
}

// take drains the buffer and resets the tap state.
func (d *detector) take() []contracts.Event {
	events := d.buffer
	d.buffer = nil
	d.taps = 0
	d.lastTap = time.Time{}
	return events
}

// Pair runs the two reserved-note detectors with identical rules.
type Pair struct {
	low  detector
	high detector
}

// NewPair creates the detector pair for the given reserved notes.
func NewPair(lowNote, highNote uint8, tapTimeout time.Duration) *Pair {
	return &Pair{
		low:  detector{note: lowNote, timeout: tapTimeout},
		high: detector{note: highNote, suffix: BookmarkSuffix, timeout: tapTimeout},
	}
}

// Feed runs one event through the pair. Note events on a watched note are
// buffered; a note-on is a tap, the third tap within the timeout triggers.
// Anything else interrupts both pending gestures, flushing their buffers.
//
// A note-on with velocity zero counts as a tap like any other note-on; the
// release convention is deliberately not applied here.
func (p *Pair) Feed(ev contracts.Event) Result {
	if !ev.Kind.IsNote() {
		return Result{Flush: p.flushInterrupted()}
	}

	for _, d := range []*detector{&p.low, &p.high} {
		if ev.Note != d.note {
			continue
		}
		res := Result{Handled: true}
		if ev.Kind == contracts.NoteOnEvent && d.taps > 0 && ev.Timestamp.Sub(d.lastTap) > d.timeout {
			// The pause broke the gesture; the buffered taps were music.
			res.Flush = d.take()
		}
		d.buffer = append(d.buffer, ev)
		if ev.Kind == contracts.NoteOnEvent {
			d.taps++
			d.lastTap = ev.Timestamp
			if d.taps >= 3 {
				res.Triggered = true
				res.Suffix = d.suffix
			}
		}
		return res
	}

	return Result{Flush: p.flushInterrupted()}
}

// flushInterrupted drains any detector holding at least one counted tap.
// Buffers holding only releases stay put until the session stops.
func (p *Pair) flushInterrupted() []contracts.Event {
	var events []contracts.Event
	if p.low.taps > 0 {
		events = append(events, p.low.take()...)
	}
	if p.high.taps > 0 {
		events = append(events, p.high.take()...)
	}
	return events
}

// FlushAll unconditionally drains both buffers, in low-then-high order.
// Called when a session stops without a completed gesture.
func (p *Pair) FlushAll() []contracts.Event {
	return append(p.low.take(), p.high.take()...)
}

// Reset discards both buffers. Called on the trigger path, where the taps
// must never be written.
func (p *Pair) Reset() {
	p.low.take()
	p.high.take()
}
