package contracts

import "time"

// PathBuilder derives the storage path for a session from its start instant,
// creating parent directories as needed. The suffix, when non-empty, is
// inserted before the file extension.
type PathBuilder interface {
	SessionPath(start time.Time, suffix string) (string, error)
}

// PowerManager toggles a reduced-power operating mode. Calls are best effort;
// a failure never affects recording correctness.
type PowerManager interface {
	SetSaving(on bool) error
}

// Notifier signals service state to a supervising process. Both calls are
// fire and forget.
type Notifier interface {
	// Ready announces that startup has completed.
	Ready()
	// Alive is a periodic liveness ping.
	Alive()
}
