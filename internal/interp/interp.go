// Package interp evaluates a keyframe timeline at an arbitrary timestamp.
// Every function here is pure: identical (timeline, t) inputs always yield
// identical output, which is what keeps interactive preview and frame-by-frame
// export in agreement.
package interp

import (
	"github.com/screenglide/screenglide/internal/easing"
	"github.com/screenglide/screenglide/internal/timeline"
)

// CursorState is the resolved cursor at one instant. Size, Shape and Color
// keep their zero values when no keyframe on the segment specifies them; the
// consumer applies its configured defaults.
type CursorState struct {
	X     float64
	Y     float64
	Size  float64
	Shape string
	Color string
}

// ZoomState is the resolved zoom crop at one instant.
type ZoomState struct {
	CenterX    float64
	CenterY    float64
	Level      float64
	CropWidth  float64
	CropHeight float64
}

// bracket finds the segment containing t: the last keyframe at or before t
// and the first one after it. Timestamps outside the timeline clamp to the
// boundary keyframe on both sides, so callers never extrapolate. The slice
// must be normalized (sorted ascending) and non-empty.
func bracket[K timeline.Keyed](kfs []K, t float64) (prev, next K) {
	if t <= kfs[0].Time() {
		return kfs[0], kfs[0]
	}
	last := kfs[len(kfs)-1]
	if t >= last.Time() {
		return last, last
	}
	for i := 0; i < len(kfs)-1; i++ {
		if t >= kfs[i].Time() && t < kfs[i+1].Time() {
			return kfs[i], kfs[i+1]
		}
	}
	return last, last
}

// progress converts t into an eased blend factor across the prev→next
// segment. A zero-length segment yields 0 so prev's state is returned
// unmodified.
func progress(prevTime, nextTime, t float64, kind easing.Kind) float64 {
	if nextTime <= prevTime {
		return 0
	}
	p := (t - prevTime) / (nextTime - prevTime)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return kind.Apply(p)
}

// cursorEasing resolves the easing for a cursor segment. Cursor motion
// defaults to linear: auto-generated cursor paths are dense and stacking an
// ease on every tiny segment makes the pointer pulse instead of glide.
func cursorEasing(s string) easing.Kind {
	if s == "" {
		return easing.Linear
	}
	return easing.Parse(s)
}

// Cursor evaluates a cursor timeline at t. An empty timeline returns nil;
// callers treat that as "nothing to draw". A single keyframe is returned
// verbatim for every t.
func Cursor(kfs []timeline.CursorKeyframe, t float64) *CursorState {
	if len(kfs) == 0 {
		return nil
	}

	prev, next := bracket(kfs, t)
	p := progress(prev.Timestamp, next.Timestamp, t, cursorEasing(prev.Easing))

	state := &CursorState{
		X: easing.Lerp(prev.X, next.X, p),
		Y: easing.Lerp(prev.Y, next.Y, p),
	}

	// Size only blends when both endpoints carry one; otherwise whichever
	// endpoint specifies it wins, and zero means "inherit".
	switch {
	case prev.Size > 0 && next.Size > 0:
		state.Size = easing.Lerp(prev.Size, next.Size, p)
	case prev.Size > 0:
		state.Size = prev.Size
	case next.Size > 0:
		state.Size = next.Size
	}

	// Discrete fields are never blended: prev wins, next fills gaps.
	state.Shape = prev.Shape
	if state.Shape == "" {
		state.Shape = next.Shape
	}
	state.Color = prev.Color
	if state.Color == "" {
		state.Color = next.Color
	}

	return state
}

// IdentityZoom is the no-zoom state for a recording of the given dimensions:
// level 1.0, full-frame crop, centered.
func IdentityZoom(videoWidth, videoHeight float64) ZoomState {
	return ZoomState{
		CenterX:    videoWidth / 2,
		CenterY:    videoHeight / 2,
		Level:      1.0,
		CropWidth:  videoWidth,
		CropHeight: videoHeight,
	}
}

// Zoom evaluates a zoom timeline at t. Unlike the cursor, zoom must always
// resolve to some crop, so an empty timeline yields the identity state.
func Zoom(kfs []timeline.ZoomKeyframe, t, videoWidth, videoHeight float64) ZoomState {
	if len(kfs) == 0 {
		return IdentityZoom(videoWidth, videoHeight)
	}

	prev, next := bracket(kfs, t)
	p := progress(prev.Timestamp, next.Timestamp, t, easing.Parse(prev.Easing))

	a := resolveZoom(prev, videoWidth, videoHeight)
	b := resolveZoom(next, videoWidth, videoHeight)

	return ZoomState{
		CenterX:    easing.Lerp(a.CenterX, b.CenterX, p),
		CenterY:    easing.Lerp(a.CenterY, b.CenterY, p),
		Level:      easing.Lerp(a.Level, b.Level, p),
		CropWidth:  easing.Lerp(a.CropWidth, b.CropWidth, p),
		CropHeight: easing.Lerp(a.CropHeight, b.CropHeight, p),
	}
}

// resolveZoom fills a keyframe's optional crop from the video dimensions and
// guards against non-positive levels before any blending happens.
func resolveZoom(kf timeline.ZoomKeyframe, videoWidth, videoHeight float64) ZoomState {
	level := kf.Level
	if level <= 0 {
		level = 1.0
	}
	cw := kf.CropWidth
	if cw <= 0 {
		cw = videoWidth / level
	}
	ch := kf.CropHeight
	if ch <= 0 {
		ch = videoHeight / level
	}
	return ZoomState{
		CenterX:    kf.CenterX,
		CenterY:    kf.CenterY,
		Level:      level,
		CropWidth:  cw,
		CropHeight: ch,
	}
}
