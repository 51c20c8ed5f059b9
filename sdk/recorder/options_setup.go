package recorder

import (
	"os"
	"path/filepath"
	"time"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/internal/notify"
	"github.com/leandrodaf/pianorec/internal/paths"
	"github.com/leandrodaf/pianorec/internal/power"
	"github.com/leandrodaf/pianorec/internal/source"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// applyDefaultOptions sets default values for RecorderOptions if not
// explicitly provided, then constructs the default collaborators for any
// left unset.
func applyDefaultOptions(opts ...contracts.Option) (contracts.RecorderOptions, error) {
	options := &contracts.RecorderOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	options.Logger.SetLevel(options.LogLevel)

	if options.BaseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		options.BaseDir = filepath.Join(home, "midi_recordings")
	}
	if options.PortHint == "" {
		options.PortHint = "pia"
	}
	if options.SessionTimeout <= 0 {
		options.SessionTimeout = 5 * time.Second
	}
	if options.IdlePollInterval <= 0 {
		options.IdlePollInterval = 5 * time.Second
	}
	if options.ShortcutTimeout <= 0 {
		options.ShortcutTimeout = time.Second
	}
	if options.LowNote == 0 {
		options.LowNote = 22 // A#0, below normal playing range
	}
	if options.HighNote == 0 {
		options.HighNote = 106 // A#7, above normal playing range
	}
	if options.TicksPerBeat == 0 {
		options.TicksPerBeat = 480
	}
	if options.TempoUS == 0 {
		options.TempoUS = 500_000 // 120 BPM
	}

	if options.Paths == nil {
		options.Paths = paths.NewBuilder(options.BaseDir)
	}
	if options.Power == nil {
		options.Power = power.NewManager(options.Logger, "")
	}
	if options.Notifier == nil {
		options.Notifier = notify.New(options.Logger, os.Getenv("NOTIFY_SOCKET"))
	}
	if options.Source == nil {
		src, err := source.New(options.Logger)
		if err != nil {
			return contracts.RecorderOptions{}, err
		}
		options.Source = src
	}

	return *options, nil
}
