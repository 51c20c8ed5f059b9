package midiport

import (
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Decode maps a wire message to an Event stamped with its arrival instant.
// A note-on with velocity zero stays a note-on; the session engine depends
// on that distinction for its gesture handling.
func Decode(msg midi.Message, arrival time.Time) contracts.Event {
	ev := contracts.Event{Kind: contracts.OtherEvent, Timestamp: arrival}

	var channel, key, velocity uint8
	var relative int16
	var absolute uint16
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		ev.Kind = contracts.NoteOnEvent
		ev.Channel, ev.Note, ev.Velocity = channel, key, velocity
	case msg.GetNoteOff(&channel, &key, &velocity):
		ev.Kind = contracts.NoteOffEvent
		ev.Channel, ev.Note, ev.Velocity = channel, key, velocity
	case msg.GetControlChange(&channel, &key, &velocity):
		ev.Kind = contracts.ControlChangeEvent
		ev.Channel, ev.Note, ev.Velocity = channel, key, velocity
	case msg.GetPitchBend(&channel, &relative, &absolute):
		ev.Kind = contracts.PitchBendEvent
		ev.Channel = channel
		ev.Note = uint8(absolute & 0x7F)
		ev.Velocity = uint8(absolute >> 7)
	case msg.Is(midi.TimingClockMsg):
		ev.Kind = contracts.ClockEvent
	case msg.Is(midi.ActiveSenseMsg):
		ev.Kind = contracts.ActiveSensingEvent
	}
	return ev
}
