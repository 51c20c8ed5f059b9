// Package timing converts monotonic arrival timestamps into MIDI tick deltas
// at a fixed tempo.
package timing

import "time"

// DeltaTicks returns the number of ticks covered by the gap between two
// arrival instants, floored to an integer and clamped at zero so that clock
// anomalies can never produce a negative delta. A zero prev means there is no
// earlier event to diff against and the delta is 0.
func DeltaTicks(prev, cur time.Time, ticksPerBeat uint16, tempoMicroseconds uint32) uint32 {
	if prev.IsZero() {
		return 0
	}
	deltaSeconds := cur.Sub(prev).Seconds()
	beatsPerSecond := 1_000_000.0 / float64(tempoMicroseconds)
	ticks := int64(deltaSeconds * float64(ticksPerBeat) * beatsPerSecond)
	if ticks < 0 {
		return 0
	}
	return uint32(ticks)
}
