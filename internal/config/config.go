// Package config reads the recorder's settings from the environment.
// Everything has a default matching a small always-on piano recorder.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the externally supplied configuration surface.
type Config struct {
	BaseDir  string
	PortHint string

	SessionTimeout   time.Duration
	IdlePollInterval time.Duration
	ShortcutTimeout  time.Duration

	LowNote  uint8
	HighNote uint8

	TicksPerBeat uint16
	TempoUS      uint32
}

// FromEnv builds the configuration from PIANOREC_* environment variables,
// falling back to the defaults for anything unset or unparsable.
func FromEnv() Config {
	return Config{
		BaseDir:          defaultString(os.Getenv("PIANOREC_BASE_DIR"), defaultBaseDir()),
		PortHint:         defaultString(os.Getenv("PIANOREC_PORT_HINT"), "pia"),
		SessionTimeout:   durationEnv("PIANOREC_SESSION_TIMEOUT", 5*time.Second),
		IdlePollInterval: durationEnv("PIANOREC_IDLE_POLL", 5*time.Second),
		ShortcutTimeout:  durationEnv("PIANOREC_SHORTCUT_TIMEOUT", time.Second),
		LowNote:          uint8(uintEnv("PIANOREC_LOW_NOTE", 22, 8)),
		HighNote:         uint8(uintEnv("PIANOREC_HIGH_NOTE", 106, 8)),
		TicksPerBeat:     uint16(uintEnv("PIANOREC_TICKS_PER_BEAT", 480, 16)),
		TempoUS:          uint32(uintEnv("PIANOREC_TEMPO", 500_000, 32)),
	}
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "midi_recordings"
	}
	return filepath.Join(home, "midi_recordings")
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func uintEnv(key string, fallback uint64, bits int) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return fallback
	}
	return n
}
