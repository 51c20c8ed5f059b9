//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"time"

	"github.com/youpy/go-coremidi"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Error definitions for CoreMIDI connection issues.
var (
	ErrSourceNotFound  = errors.New("MIDI source not found")
	ErrCreateInputPort = errors.New("error creating input port")
	ErrConnect         = errors.New("error connecting to MIDI source")
)

// Source manages MIDI input through CoreMIDI on macOS.
type Source struct {
	logger contracts.Logger
	client coremidi.Client
}

// NewSource creates the CoreMIDI client.
func NewSource(logger contracts.Logger) (contracts.EventSource, error) {
	client, err := coremidi.NewClient("pianorec")
	if err != nil {
		return nil, err
	}
	logger.Info("MIDI source created (CoreMIDI)")
	return &Source{logger: logger, client: client}, nil
}

// Ports lists the names of the available CoreMIDI sources.
func (s *Source) Ports() ([]string, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI sources: %w", err)
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name()
	}
	return names, nil
}

// Open connects an input port to the named source. Packets are timestamped
// on arrival, decoded and handed to fn.
func (s *Source) Open(name string, fn func(contracts.Event)) (contracts.Connection, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI sources: %w", err)
	}
	var target *coremidi.Source
	for i := range sources {
		if sources[i].Name() == name {
			target = &sources[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
	}

	port, err := coremidi.NewInputPort(s.client, "pianorec input", func(_ coremidi.Source, packet coremidi.Packet) {
		arrival := time.Now()
		if len(packet.Data) == 0 {
			return
		}
		fn(decodePacket(packet.Data, arrival))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn, err := port.Connect(*target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	s.logger.Info("MIDI source connected",
		s.logger.Field().String("source", name))
	return &connection{name: name, conn: conn}, nil
}

// Close releases the backend. CoreMIDI clients need no explicit teardown.
func (s *Source) Close() error {
	return nil
}

type portConnection interface {
	Disconnect()
}

type connection struct {
	name string
	conn portConnection
}

func (c *connection) Name() string {
	return c.name
}

func (c *connection) Close() error {
	c.conn.Disconnect()
	return nil
}

// decodePacket maps raw CoreMIDI packet bytes to an Event. Velocity-zero
// note-ons are reported as note-ons, matching the portable backend.
func decodePacket(data []byte, arrival time.Time) contracts.Event {
	ev := contracts.Event{Kind: contracts.OtherEvent, Timestamp: arrival}

	switch data[0] {
	case 0xF8:
		ev.Kind = contracts.ClockEvent
		return ev
	case 0xFE:
		ev.Kind = contracts.ActiveSensingEvent
		return ev
	}
	if len(data) < 3 {
		return ev
	}

	channel := data[0] & 0x0F
	switch data[0] & 0xF0 {
	case 0x90:
		ev.Kind = contracts.NoteOnEvent
	case 0x80:
		ev.Kind = contracts.NoteOffEvent
	case 0xB0:
		ev.Kind = contracts.ControlChangeEvent
	case 0xE0:
		ev.Kind = contracts.PitchBendEvent
	default:
		return ev
	}
	ev.Channel, ev.Note, ev.Velocity = channel, data[1], data[2]
	return ev
}
