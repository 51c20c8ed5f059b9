// Package paths derives session file locations from calendar time.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Builder lays sessions out as BASE/<year>/<month number-name>/<day>/
// session_<HHMMSS>[suffix].mid and creates the directories on demand.
type Builder struct {
	base string
}

var _ contracts.PathBuilder = (*Builder)(nil)

// NewBuilder creates a builder rooted at base.
func NewBuilder(base string) *Builder {
	return &Builder{base: base}
}

// SessionPath returns the storage path for a session started at start.
func (b *Builder) SessionPath(start time.Time, suffix string) (string, error) {
	dir := filepath.Join(
		b.base,
		start.Format("2006"),
		start.Format("01-January"),
		start.Format("02"),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating session directory: %w", err)
	}
	name := "session_" + start.Format("150405") + suffix + ".mid"
	return filepath.Join(dir, name), nil
}
