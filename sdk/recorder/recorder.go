// Package recorder is the public entry point of the capture engine. It wires
// the hardware event source, the port watcher and the session engine
// together.
package recorder

import (
	"context"

	"github.com/leandrodaf/pianorec/internal/engine"
	"github.com/leandrodaf/pianorec/internal/source"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Recorder captures performances from a MIDI input and saves each
// idle-bounded session as a Standard MIDI File.
type Recorder struct {
	logger  contracts.Logger
	options contracts.RecorderOptions
	engine  *engine.Engine
	watcher *source.Watcher
}

// New creates a recorder with the specified options. It applies defaults and
// constructs the default collaborators for anything not provided.
func New(opts ...contracts.Option) (*Recorder, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	eng := engine.New(options.Logger, engine.Config{
		SessionTimeout:   options.SessionTimeout,
		IdlePollInterval: options.IdlePollInterval,
		ShortcutTimeout:  options.ShortcutTimeout,
		LowNote:          options.LowNote,
		HighNote:         options.HighNote,
		TicksPerBeat:     options.TicksPerBeat,
		TempoUS:          options.TempoUS,
	}, options.Paths, options.Power, options.Notifier)

	watcher := source.NewWatcher(options.Logger, options.Source, options.PortHint, eng.Push)

	return &Recorder{
		logger:  options.Logger,
		options: options,
		engine:  eng,
		watcher: watcher,
	}, nil
}

// Run blocks until ctx is cancelled. The port watcher runs on its own
// goroutine and owns the hardware connection; the engine loop owns all
// session state. On cancellation the current session, if any, is stopped and
// flushed before Run returns.
func (r *Recorder) Run(ctx context.Context) error {
	r.options.Notifier.Ready()

	go r.watcher.Run(ctx)
	r.engine.Run(ctx)

	return r.options.Source.Close()
}
