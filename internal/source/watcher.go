package source

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

const (
	rescanInterval = time.Second
	errorBackoff   = 2 * time.Second
)

// Watcher maintains the connection to an input port, rediscovering ports on
// a fixed cadence and reconnecting after hot-unplug. It is the exclusive
// owner of the active connection handle; nothing else ever touches it.
type Watcher struct {
	logger contracts.Logger
	src    contracts.EventSource
	hint   string
	push   func(contracts.Event)

	conn contracts.Connection
}

// NewWatcher creates a watcher that delivers events from the connected port
// to push.
func NewWatcher(logger contracts.Logger, src contracts.EventSource, hint string, push func(contracts.Event)) *Watcher {
	return &Watcher{logger: logger, src: src, hint: hint, push: push}
}

// Run blocks, re-scanning every second and backing off to two seconds after
// an error, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	for {
		pause := rescanInterval
		if err := w.scan(); err != nil {
			w.logger.Error("port scan failed", w.logger.Field().Error("error", err))
			pause = errorBackoff
		}
		select {
		case <-ctx.Done():
			w.disconnect()
			return
		case <-time.After(pause):
		}
	}
}

// scan verifies the current connection against the available ports and
// connects to the preferred port when disconnected.
func (w *Watcher) scan() error {
	ports, err := w.src.Ports()
	if err != nil {
		return err
	}

	if w.conn != nil {
		if slices.Contains(ports, w.conn.Name()) {
			return nil
		}
		w.logger.Warn("input port lost",
			w.logger.Field().String("port", w.conn.Name()))
		w.disconnect()
	}

	name, ok := pickPort(ports, w.hint)
	if !ok {
		return nil
	}
	conn, err := w.src.Open(name, w.push)
	if err != nil {
		return err
	}
	w.conn = conn
	w.logger.Info("connected to input port",
		w.logger.Field().String("port", name))
	return nil
}

func (w *Watcher) disconnect() {
	if w.conn == nil {
		return
	}
	if err := w.conn.Close(); err != nil {
		w.logger.Warn("closing input port failed",
			w.logger.Field().Error("error", err))
	}
	w.conn = nil
}

// pickPort prefers a port whose name contains hint, case-insensitively, and
// falls back to the first available port.
func pickPort(ports []string, hint string) (string, bool) {
	if len(ports) == 0 {
		return "", false
	}
	if hint != "" {
		lower := strings.ToLower(hint)
		for _, port := range ports {
			if strings.Contains(strings.ToLower(port), lower) {
				return port, true
			}
		}
	}
	return ports[0], true
}
