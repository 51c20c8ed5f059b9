//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

type dummySource struct {
	logger contracts.Logger
}

// NewSource initializes a dummy source for non-macOS systems. The platform
// factory never selects it outside darwin.
func NewSource(logger contracts.Logger) (contracts.EventSource, error) {
	logger.Warn("using dummy CoreMIDI source on a non-macOS system")
	return &dummySource{logger: logger}, nil
}

func (s *dummySource) Ports() ([]string, error) {
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

func (s *dummySource) Open(name string, fn func(contracts.Event)) (contracts.Connection, error) {
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

func (s *dummySource) Close() error {
	return nil
}
