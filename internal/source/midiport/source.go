// Package midiport is the portable event source backend built on the rtmidi
// driver. It serves every platform without a native backend.
package midiport

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// ErrPortNotFound is returned when the named input port is not available.
var ErrPortNotFound = errors.New("input port not found")

// Source manages MIDI input through rtmidi.
type Source struct {
	logger contracts.Logger
	driver *rtmididrv.Driver
}

// NewSource initializes the rtmidi driver.
func NewSource(logger contracts.Logger) (contracts.EventSource, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("initializing rtmidi driver: %w", err)
	}
	logger.Info("MIDI source created (rtmidi)")
	return &Source{logger: logger, driver: driver}, nil
}

// Ports lists the names of the available input ports.
func (s *Source) Ports() ([]string, error) {
	ins, err := s.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing input ports: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// Open connects to the named port. Each incoming message is timestamped on
// arrival, decoded and handed to fn; the listener goroutine does nothing
// else.
func (s *Source) Open(name string, fn func(contracts.Event)) (contracts.Connection, error) {
	ins, err := s.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing input ports: %w", err)
	}
	var port drivers.In
	for _, in := range ins {
		if in.String() == name {
			port = in
			break
		}
	}
	if port == nil {
		return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
	}
	if err := port.Open(); err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}

	stop, err := midi.ListenTo(port, func(msg midi.Message, _ int32) {
		fn(Decode(msg, time.Now()))
	},
		midi.UseActiveSense(),
		midi.UseTimeCode(),
		midi.HandleError(func(listenErr error) {
			s.logger.Warn("MIDI listener error",
				s.logger.Field().String("port", name),
				s.logger.Field().Error("error", listenErr))
		}))
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("listening on %q: %w", name, err)
	}

	return &connection{name: name, port: port, stop: stop}, nil
}

// Close shuts down the rtmidi driver.
func (s *Source) Close() error {
	return s.driver.Close()
}

type connection struct {
	name string
	port drivers.In
	stop func()
}

func (c *connection) Name() string {
	return c.name
}

func (c *connection) Close() error {
	c.stop()
	return c.port.Close()
}
