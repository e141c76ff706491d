// Package pulse computes the transient cursor scale bounce triggered by a
// click. The evaluation is a pure function of (t, clicks), so re-evaluating
// any timestamp during scrubbing or export is idempotent.
package pulse

import (
	"github.com/screenglide/screenglide/internal/easing"
	"github.com/screenglide/screenglide/internal/timeline"
)

const (
	// DefaultDurationMs is the full length of the shrink-and-recover bounce.
	DefaultDurationMs = 600.0

	// DefaultMinScale is the scale the cursor shrinks to at the middle of
	// the bounce.
	DefaultMinScale = 0.8
)

// ScaleAt returns the cursor scale multiplier at time t. Only the most recent
// down event whose pulse window contains t is considered; with no such event
// the multiplier is 1.0. The first half of the window shrinks from 1.0 toward
// minScale with an ease-out, the second half grows back with an ease-in.
func ScaleAt(t float64, clicks []timeline.ClickEvent, durationMs, minScale float64) float64 {
	if durationMs <= 0 {
		durationMs = DefaultDurationMs
	}
	if minScale <= 0 || minScale > 1 {
		minScale = DefaultMinScale
	}

	latest, ok := latestDown(t, clicks, durationMs)
	if !ok {
		return 1.0
	}

	progress := (t - latest.Timestamp) / durationMs
	if progress < 0.5 {
		p := easing.EaseOut.Apply(progress / 0.5)
		return easing.Lerp(1.0, minScale, p)
	}
	p := easing.EaseIn.Apply((progress - 0.5) / 0.5)
	return easing.Lerp(minScale, 1.0, p)
}

// latestDown finds the most recent down event with 0 <= t - ts <= durationMs.
// The scan tolerates unsorted click streams.
func latestDown(t float64, clicks []timeline.ClickEvent, durationMs float64) (timeline.ClickEvent, bool) {
	var best timeline.ClickEvent
	found := false
	for _, c := range clicks {
		if c.Action != timeline.ActionDown {
			continue
		}
		age := t - c.Timestamp
		if age < 0 || age > durationMs {
			continue
		}
		if !found || c.Timestamp > best.Timestamp {
			best = c
			found = true
		}
	}
	return best, found
}
