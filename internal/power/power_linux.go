//go:build linux
// +build linux

package power

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

const (
	savingGovernor = "powersave"
	normalGovernor = "ondemand"
)

// Manager switches the CPU frequency governor through sysfs. Failures are
// reported but are never fatal to the caller; low-power mode is an
// optimization only.
type Manager struct {
	logger contracts.Logger
	root   string
}

// NewManager creates a governor-backed power manager. An empty root uses the
// standard sysfs location.
func NewManager(logger contracts.Logger, root string) *Manager {
	if root == "" {
		root = "/sys/devices/system/cpu"
	}
	return &Manager{logger: logger, root: root}
}

// SetSaving writes the matching governor to every CPU that exposes one.
func (m *Manager) SetSaving(on bool) error {
	governor := normalGovernor
	if on {
		governor = savingGovernor
	}

	pattern := filepath.Join(m.root, "cpu[0-9]*", "cpufreq", "scaling_governor")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		m.logger.Debug("no CPU governor files found",
			m.logger.Field().String("pattern", pattern))
		return nil
	}

	var errs error
	for _, file := range files {
		if err := unix.Access(file, unix.W_OK); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		if err := os.WriteFile(file, []byte(governor+"\n"), 0o644); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
