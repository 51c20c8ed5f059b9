//go:build !linux
// +build !linux

package power

import "github.com/leandrodaf/pianorec/sdk/contracts"

// Manager is a no-op on platforms without a sysfs CPU governor.
type Manager struct {
	logger contracts.Logger
}

// NewManager creates a no-op power manager. The root argument is ignored.
func NewManager(logger contracts.Logger, root string) *Manager {
	return &Manager{logger: logger}
}

// SetSaving does nothing.
func (m *Manager) SetSaving(on bool) error {
	m.logger.Debug("power mode change ignored on this platform",
		m.logger.Field().Bool("saving", on))
	return nil
}
