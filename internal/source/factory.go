// Package source selects and supervises the hardware input backend.
package source

import (
	"runtime"

	"github.com/leandrodaf/pianorec/internal/source/mididarwin"
	"github.com/leandrodaf/pianorec/internal/source/midiport"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// sourceInitializers maps OS names to native backend initializers. Anything
// not listed falls back to the portable rtmidi backend.
var sourceInitializers = map[string]func(contracts.Logger) (contracts.EventSource, error){
	"darwin": mididarwin.NewSource,
}

// New initializes the event source backend for the current operating system.
func New(logger contracts.Logger) (contracts.EventSource, error) {
	if initializer, exists := sourceInitializers[runtime.GOOS]; exists {
		return initializer(logger)
	}
	return midiport.NewSource(logger)
}
