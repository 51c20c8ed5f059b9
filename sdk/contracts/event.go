package contracts

import "time"

// EventKind classifies a raw input event by its MIDI message type.
type EventKind uint8

const (
	// NoteOnEvent is a key press (status 0x90). A velocity of zero is still
	// reported as NoteOnEvent; downstream consumers decide how to treat it.
	NoteOnEvent EventKind = iota
	// NoteOffEvent is a key release (status 0x80).
	NoteOffEvent
	// ControlChangeEvent is a controller move (status 0xB0); Note carries the
	// controller number and Velocity the controller value.
	ControlChangeEvent
	// PitchBendEvent is a bend wheel move (status 0xE0); Note carries the low
	// seven bits of the bend value and Velocity the high seven bits.
	PitchBendEvent
	// ClockEvent is a realtime timing clock pulse (0xF8).
	ClockEvent
	// ActiveSensingEvent is a realtime active-sensing ping (0xFE).
	ActiveSensingEvent
	// OtherEvent is any message the recorder does not interpret.
	OtherEvent
)

// String returns the lowercase name of the event kind.
func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note_on"
	case NoteOffEvent:
		return "note_off"
	case ControlChangeEvent:
		return "control_change"
	case PitchBendEvent:
		return "pitch_bend"
	case ClockEvent:
		return "clock"
	case ActiveSensingEvent:
		return "active_sensing"
	}
	return "other"
}

// IsNote reports whether the kind is a note press or release.
func (k EventKind) IsNote() bool {
	return k == NoteOnEvent || k == NoteOffEvent
}

// IsRealtime reports whether the kind is a realtime housekeeping message
// that carries no musical content.
func (k EventKind) IsRealtime() bool {
	return k == ClockEvent || k == ActiveSensingEvent
}

// Event is one raw input event captured from a hardware source, immutable
// once created. Timestamp is taken as close to delivery as possible and is
// monotonic, so differences between timestamps are safe for timing math.
type Event struct {
	Kind      EventKind
	Channel   uint8
	Note      uint8
	Velocity  uint8
	Timestamp time.Time
}
