package contracts

import "time"

// RecorderOptions defines the configuration options for the recorder.
type RecorderOptions struct {
	Logger   Logger   // Logger for logging events and errors.
	LogLevel LogLevel // Level of logging to use.

	BaseDir  string // Root directory for saved session files.
	PortHint string // Case-insensitive substring used to prefer an input port.

	SessionTimeout   time.Duration // Inactivity period after which a session is closed.
	IdlePollInterval time.Duration // Control loop sleep while in low-power mode.
	ShortcutTimeout  time.Duration // Maximum gap between taps of a reserved note.

	LowNote  uint8 // Reserved note triggering a plain forced stop.
	HighNote uint8 // Reserved note triggering a bookmarked stop.

	TicksPerBeat uint16 // Resolution of the written files.
	TempoUS      uint32 // Fixed tempo in microseconds per beat.

	Source   EventSource  // Hardware input backend.
	Paths    PathBuilder  // Session path construction.
	Power    PowerManager // Low-power mode collaborator.
	Notifier Notifier     // Service liveness collaborator.
}

// Option is a function that modifies RecorderOptions.
type Option func(*RecorderOptions)

// WithLogger sets the logger for the recorder.
func WithLogger(l Logger) Option {
	return func(opts *RecorderOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the recorder.
func WithLogLevel(level LogLevel) Option {
	return func(opts *RecorderOptions) {
		opts.LogLevel = level
	}
}

// WithBaseDir sets the root directory under which session files are saved.
func WithBaseDir(dir string) Option {
	return func(opts *RecorderOptions) {
		opts.BaseDir = dir
	}
}

// WithPortHint sets the substring used to prefer an input port by name.
func WithPortHint(hint string) Option {
	return func(opts *RecorderOptions) {
		opts.PortHint = hint
	}
}

// WithSessionTimeout sets the inactivity period after which a session ends.
func WithSessionTimeout(d time.Duration) Option {
	return func(opts *RecorderOptions) {
		opts.SessionTimeout = d
	}
}

// WithIdlePollInterval sets the control loop sleep used in low-power mode.
func WithIdlePollInterval(d time.Duration) Option {
	return func(opts *RecorderOptions) {
		opts.IdlePollInterval = d
	}
}

// WithShortcutTimeout sets the maximum gap between reserved-note taps.
func WithShortcutTimeout(d time.Duration) Option {
	return func(opts *RecorderOptions) {
		opts.ShortcutTimeout = d
	}
}

// WithReservedNotes sets the two note values watched for shortcut gestures.
func WithReservedNotes(low, high uint8) Option {
	return func(opts *RecorderOptions) {
		opts.LowNote = low
		opts.HighNote = high
	}
}

// WithTicksPerBeat sets the tick resolution of the written files.
func WithTicksPerBeat(ticks uint16) Option {
	return func(opts *RecorderOptions) {
		opts.TicksPerBeat = ticks
	}
}

// WithTempo sets the fixed tempo in microseconds per beat.
func WithTempo(microsecondsPerBeat uint32) Option {
	return func(opts *RecorderOptions) {
		opts.TempoUS = microsecondsPerBeat
	}
}

// WithEventSource sets the hardware input backend.
func WithEventSource(src EventSource) Option {
	return func(opts *RecorderOptions) {
		opts.Source = src
	}
}

// WithPathBuilder sets the session path construction collaborator.
func WithPathBuilder(pb PathBuilder) Option {
	return func(opts *RecorderOptions) {
		opts.Paths = pb
	}
}

// WithPowerManager sets the low-power mode collaborator.
func WithPowerManager(pm PowerManager) Option {
	return func(opts *RecorderOptions) {
		opts.Power = pm
	}
}

// WithNotifier sets the service liveness collaborator.
func WithNotifier(n Notifier) Option {
	return func(opts *RecorderOptions) {
		opts.Notifier = n
	}
}
