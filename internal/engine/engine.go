// Package engine owns the session lifecycle: it drains the ingestion queue,
// runs events through the shortcut detectors, feeds the session writer, and
// ends sessions on inactivity.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/pianorec/internal/queue"
	"github.com/leandrodaf/pianorec/internal/shortcut"
	"github.com/leandrodaf/pianorec/internal/track"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Config carries the timing and note parameters of the engine.
type Config struct {
	SessionTimeout   time.Duration // inactivity period ending a session
	CheckInterval    time.Duration // cadence for timeout checks and liveness pings
	IdlePollInterval time.Duration // loop sleep while in low-power mode
	ActivePollPause  time.Duration // loop sleep while active
	ShortcutTimeout  time.Duration // maximum gap between reserved-note taps
	LowNote          uint8
	HighNote         uint8
	TicksPerBeat     uint16
	TempoUS          uint32
}

// Engine is the single owner of all mutable recording state. Every method
// except Push runs on the control loop goroutine; Push only touches the
// queue, which is the sole concurrency boundary.
type Engine struct {
	logger    contracts.Logger
	cfg       Config
	queue     *queue.Queue
	shortcuts *shortcut.Pair
	writer    *track.Writer
	paths     contracts.PathBuilder
	power     contracts.PowerManager
	notifier  contracts.Notifier

	now func() time.Time

	recording    bool
	lowPower     bool
	lastActivity time.Time
	sessionStart time.Time
}

// New creates an engine. All collaborators must be non-nil.
func New(logger contracts.Logger, cfg Config, paths contracts.PathBuilder, power contracts.PowerManager, notifier contracts.Notifier) *Engine {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Second
	}
	if cfg.ActivePollPause <= 0 {
		cfg.ActivePollPause = time.Millisecond
	}
	return &Engine{
		logger:    logger,
		cfg:       cfg,
		queue:     queue.New(),
		shortcuts: shortcut.NewPair(cfg.LowNote, cfg.HighNote, cfg.ShortcutTimeout),
		writer:    track.NewWriter(cfg.TicksPerBeat, cfg.TempoUS),
		paths:     paths,
		power:     power,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Push enqueues one event for processing. Safe to call from the hardware
// delivery context; it never blocks on engine state.
func (e *Engine) Push(ev contracts.Event) {
	e.queue.Push(ev)
}

// Run drives the control loop until ctx is cancelled, then stops and flushes
// any open session.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Info("engine started",
		e.logger.Field().Duration("sessionTimeout", e.cfg.SessionTimeout),
		e.logger.Field().Uint8("lowNote", e.cfg.LowNote),
		e.logger.Field().Uint8("highNote", e.cfg.HighNote))

	lastCheck := e.now()
	for {
		e.processPending()

		if now := e.now(); now.Sub(lastCheck) > e.cfg.CheckInterval {
			e.checkTimeout()
			e.notifier.Alive()
			lastCheck = now
		}

		pause := e.cfg.ActivePollPause
		if e.lowPower {
			pause = e.cfg.IdlePollInterval
		}
		select {
		case <-ctx.Done():
			e.logger.Info("shutdown requested")
			e.stopSession("", false, false)
			return
		case <-time.After(pause):
		}
	}
}

// processPending drains the queue and processes each event in arrival order.
// A panic in the per-event path is contained here so that an unexpected
// failure cannot take down accumulated session state; the loop resumes after
// a short backoff.
func (e *Engine) processPending() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event processing failed",
				e.logger.Field().String("panic", fmt.Sprint(r)))
			time.Sleep(time.Second)
		}
	}()

	for _, ev := range e.queue.Drain() {
		if stopped := e.process(ev); stopped {
			// The trigger discarded everything in flight, including the
			// rest of this batch.
			return
		}
	}
}

// process handles one event. It returns true when the event completed a
// shortcut gesture and stopped the session.
func (e *Engine) process(ev contracts.Event) bool {
	if ev.Kind.IsRealtime() {
		return false
	}

	e.lastActivity = e.now()
	if e.lowPower {
		e.exitLowPower()
	}
	if !e.recording {
		e.startSession()
	}

	res := e.shortcuts.Feed(ev)
	for _, flushed := range res.Flush {
		e.writer.Append(flushed)
	}
	if res.Triggered {
		e.queue.Clear()
		e.stopSession(res.Suffix, true, true)
		return true
	}
	if !res.Handled {
		e.writer.Append(ev)
	}
	return false
}

// startSession transitions Idle -> Recording.
func (e *Engine) startSession() {
	e.sessionStart = e.now()
	e.writer.Begin()
	e.recording = true
	e.logger.Info("recording session started")
}

// stopSession transitions Recording -> Idle and saves the track when it has
// content. With skipQueue the in-flight queue is discarded instead of being
// processed; with skipBuffer the shortcut buffers are discarded instead of
// being flushed into the track.
func (e *Engine) stopSession(suffix string, skipQueue, skipBuffer bool) {
	if !e.recording {
		return
	}

	if skipQueue {
		e.queue.Clear()
	} else {
		// Drained while still recording; a restart here would wipe the
		// accumulated track.
		for _, ev := range e.queue.Drain() {
			if e.process(ev) {
				// A completed gesture already stopped and saved the session.
				return
			}
		}
	}
	e.recording = false

	if skipBuffer {
		e.shortcuts.Reset()
	} else {
		for _, ev := range e.shortcuts.FlushAll() {
			e.writer.Append(ev)
		}
	}

	if e.writer.Len() > 0 {
		e.save(suffix)
	}
	e.writer.Discard()
}

func (e *Engine) save(suffix string) {
	path, err := e.paths.SessionPath(e.sessionStart, suffix)
	if err != nil {
		e.logger.Error("session path construction failed",
			e.logger.Field().Error("error", err))
		return
	}
	if err := e.writer.Save(path); err != nil {
		e.logger.Error("saving session failed",
			e.logger.Field().String("path", path),
			e.logger.Field().Error("error", err))
		return
	}
	e.logger.Info("recording saved",
		e.logger.Field().String("path", path),
		e.logger.Field().Int("events", e.writer.Len()),
		e.logger.Field().Duration("duration", e.writer.Duration()))
}

// checkTimeout ends the session after the inactivity period and drops into
// low-power mode. Called on the fixed check cadence, not per event.
func (e *Engine) checkTimeout() {
	if !e.recording || e.lastActivity.IsZero() {
		return
	}
	if e.now().Sub(e.lastActivity) > e.cfg.SessionTimeout {
		e.logger.Info("session idle timeout, stopping recording")
		e.stopSession("", false, false)
		e.enterLowPower()
	}
}

func (e *Engine) enterLowPower() {
	if e.lowPower {
		return
	}
	e.lowPower = true
	e.logger.Info("entering low power mode")
	if err := e.power.SetSaving(true); err != nil {
		e.logger.Warn("power mode change failed",
			e.logger.Field().Error("error", err))
	}
}

func (e *Engine) exitLowPower() {
	if !e.lowPower {
		return
	}
	e.lowPower = false
	e.logger.Info("exiting low power mode")
	if err := e.power.SetSaving(false); err != nil {
		e.logger.Warn("power mode change failed",
			e.logger.Field().Error("error", err))
	}
}
