package motion

import "github.com/screenglide/screenglide/internal/timeline"

// DefaultShapeDwellMs is how long a new cursor shape must persist in the
// keyframe look-ahead before the stabilizer commits to it.
const DefaultShapeDwellMs = 120.0

// ShapeStabilizer suppresses cursor-shape flapping. Raw per-keyframe shapes
// can change every few milliseconds when they mirror hover telemetry; the
// stabilizer only commits a change once the new shape holds for a minimum
// dwell window, looking ahead over the keyframe sequence.
type ShapeStabilizer struct {
	committed string
	dwellMs   float64
	keyframes []timeline.CursorKeyframe
}

// NewShapeStabilizer creates a stabilizer committed to initial. dwellMs is
// the persistence window; non-positive values use DefaultShapeDwellMs.
func NewShapeStabilizer(initial string, dwellMs float64) *ShapeStabilizer {
	if dwellMs <= 0 {
		dwellMs = DefaultShapeDwellMs
	}
	return &ShapeStabilizer{committed: initial, dwellMs: dwellMs}
}

// SetKeyframes installs the normalized cursor timeline used for look-ahead.
// Call it once per timeline load or edit.
func (st *ShapeStabilizer) SetKeyframes(kfs []timeline.CursorKeyframe) {
	st.keyframes = kfs
}

// Reset forces the committed shape, discarding any pending change. Required
// alongside Smoother.Reset on discontinuous seeks.
func (st *ShapeStabilizer) Reset(shape string) {
	st.committed = shape
}

// Update feeds the raw interpolated shape at time t and returns the shape the
// renderer should actually draw. A raw shape that the look-ahead shows
// reverting within the dwell window is treated as a transient and the
// previously committed shape is retained.
func (st *ShapeStabilizer) Update(raw string, t float64) string {
	if raw == "" || raw == st.committed {
		return st.committed
	}
	if st.persists(raw, t) {
		st.committed = raw
	}
	return st.committed
}

// persists reports whether every shape-bearing keyframe inside the dwell
// window agrees with raw. No contradicting keyframe means the shape holds at
// least until the window closes.
func (st *ShapeStabilizer) persists(raw string, t float64) bool {
	end := t + st.dwellMs
	for _, kf := range st.keyframes {
		if kf.Timestamp <= t {
			continue
		}
		if kf.Timestamp > end {
			break
		}
		if kf.Shape != "" && kf.Shape != raw {
			return false
		}
	}
	return true
}

// Committed returns the currently committed shape without advancing state.
func (st *ShapeStabilizer) Committed() string {
	return st.committed
}
