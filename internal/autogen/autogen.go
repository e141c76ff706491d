// Package autogen synthesizes cursor and zoom keyframes from raw click
// telemetry. It runs as a one-shot batch transform when metadata is loaded or
// edited, filling gaps in sparse manually-authored timelines without ever
// discarding user keyframes that sit clear of the generated ones.
package autogen

import (
	"sort"

	"github.com/screenglide/screenglide/internal/timeline"
)

const (
	// defaultLeadFrames is how many frames before a click the cursor (or
	// zoom) starts moving toward it.
	defaultLeadFrames = 7

	// tailGapMs: if the last keyframe ends more than this short of the
	// recording, a trailing keyframe is appended at the full duration.
	tailGapMs = 100.0

	defaultFrameRate = 30.0
)

// CursorOptions parameterizes cursor keyframe generation.
type CursorOptions struct {
	FrameRate  float64
	DurationMs float64

	// InitialX/InitialY anchor the lead-in of the first click.
	InitialX float64
	InitialY float64

	// LeadFrames overrides the pre-click travel window; zero uses the
	// default of 7 frames.
	LeadFrames int
}

// ZoomOptions parameterizes zoom keyframe generation.
type ZoomOptions struct {
	FrameRate  float64
	DurationMs float64

	// Level is the zoom multiplier applied at each click.
	Level float64

	// HoldMs is how long the zoom stays on a click before returning to
	// identity, unless a follow-up click arrives first.
	HoldMs float64

	LeadFrames int

	VideoWidth  float64
	VideoHeight float64
}

// Cursor generates cursor keyframes visiting every down-click location at the
// right time and merges them with the existing timeline. The function is
// total: no clicks, or a timeline dense enough to imply manual authoring,
// returns the input unchanged.
func Cursor(existing []timeline.CursorKeyframe, clicks []timeline.ClickEvent, opts CursorOptions) []timeline.CursorKeyframe {
	downs := downsSorted(clicks)
	if len(downs) == 0 || !shouldGenerate(len(existing), len(downs)) {
		return existing
	}

	lead := leadMs(opts.LeadFrames, opts.FrameRate)

	generated := make([]timeline.CursorKeyframe, 0, 2*len(downs))
	prevX, prevY := opts.InitialX, opts.InitialY
	for _, c := range downs {
		// Clicks earlier than the lead window clamp the lead keyframe to
		// recording start rather than losing the anchor.
		leadTs := c.Timestamp - lead
		if leadTs < 0 {
			leadTs = 0
		}
		generated = append(generated, timeline.CursorKeyframe{
			Timestamp: leadTs,
			X:         prevX,
			Y:         prevY,
		})
		generated = append(generated, timeline.CursorKeyframe{
			Timestamp: c.Timestamp,
			X:         c.X,
			Y:         c.Y,
		})
		prevX, prevY = c.X, c.Y
	}

	return merge(existing, generated, opts.DurationMs, func(last timeline.CursorKeyframe, ts float64) timeline.CursorKeyframe {
		last.Timestamp = ts
		return last
	})
}

// Zoom generates zoom keyframes that zoom into each down-click and release
// back to identity once the click has been held long enough. Unlike the
// cursor variant it also injects explicit zoom-out anchors, mirroring the
// guaranteed return-to-1:1 the renderer expects at the end of a passage.
// Existing zoom keyframes are merged, never discarded wholesale.
func Zoom(existing []timeline.ZoomKeyframe, clicks []timeline.ClickEvent, opts ZoomOptions) []timeline.ZoomKeyframe {
	downs := downsSorted(clicks)
	if len(downs) == 0 || !shouldGenerate(len(existing), len(downs)) {
		return existing
	}

	level := opts.Level
	if level <= 1 {
		level = 2.0
	}
	hold := opts.HoldMs
	if hold <= 0 {
		hold = 1500
	}
	lead := leadMs(opts.LeadFrames, opts.FrameRate)

	identity := timeline.ZoomKeyframe{
		CenterX: opts.VideoWidth / 2,
		CenterY: opts.VideoHeight / 2,
		Level:   1.0,
	}

	generated := make([]timeline.ZoomKeyframe, 0, 3*len(downs))
	for i, c := range downs {
		// Lead-in: from identity, unless the previous click is still held
		// zoomed, in which case the camera glides directly between centers.
		chained := i > 0 && c.Timestamp-downs[i-1].Timestamp <= hold+lead
		if !chained {
			leadTs := c.Timestamp - lead
			if leadTs < 0 {
				leadTs = 0
			}
			kf := identity
			kf.Timestamp = leadTs
			generated = append(generated, kf)
		}

		generated = append(generated, timeline.ZoomKeyframe{
			Timestamp: c.Timestamp,
			CenterX:   c.X,
			CenterY:   c.Y,
			Level:     level,
		})

		// Zoom back out after the hold, unless a follow-up click keeps the
		// passage alive.
		lastOfRun := i == len(downs)-1 || downs[i+1].Timestamp-c.Timestamp > hold+lead
		if lastOfRun {
			outTs := c.Timestamp + hold
			if opts.DurationMs > 0 && outTs > opts.DurationMs {
				outTs = opts.DurationMs
			}
			// Hold the zoomed state, then release.
			held := timeline.ZoomKeyframe{
				Timestamp: outTs,
				CenterX:   c.X,
				CenterY:   c.Y,
				Level:     level,
			}
			out := identity
			out.Timestamp = outTs + lead
			if opts.DurationMs > 0 && out.Timestamp > opts.DurationMs {
				out.Timestamp = opts.DurationMs
			}
			generated = append(generated, held, out)
		}
	}

	return merge(existing, generated, opts.DurationMs, func(last timeline.ZoomKeyframe, ts float64) timeline.ZoomKeyframe {
		last.Timestamp = ts
		return last
	})
}

// merge is the shared synthesize-and-merge tail of both generators:
// concatenate, normalize (sort plus later-wins dedup), and guarantee a
// trailing keyframe at the recording end when the last one stops short.
func merge[K timeline.Keyed](existing, generated []K, durationMs float64, tail func(last K, ts float64) K) []K {
	combined := make([]K, 0, len(existing)+len(generated))
	combined = append(combined, existing...)
	combined = append(combined, generated...)

	out := timeline.Normalize(combined)
	if durationMs > 0 && len(out) > 0 {
		if last := out[len(out)-1]; durationMs-last.Time() > tailGapMs {
			out = append(out, tail(last, durationMs))
		}
	}
	return out
}

// shouldGenerate is the density heuristic: a timeline already carrying half
// as many keyframes as there are clicks is presumed manually authored and
// left untouched.
func shouldGenerate(existingCount, clickCount int) bool {
	if existingCount == 0 {
		return true
	}
	return float64(existingCount) < float64(clickCount)/2
}

// downsSorted filters the click stream to down actions in chronological
// order. The input is never mutated.
func downsSorted(clicks []timeline.ClickEvent) []timeline.ClickEvent {
	var downs []timeline.ClickEvent
	for _, c := range clicks {
		if c.Action == timeline.ActionDown {
			downs = append(downs, c)
		}
	}
	sort.SliceStable(downs, func(i, j int) bool {
		return downs[i].Timestamp < downs[j].Timestamp
	})
	return downs
}

// leadMs converts the pre-click travel window from frames to milliseconds.
func leadMs(frames int, frameRate float64) float64 {
	if frames <= 0 {
		frames = defaultLeadFrames
	}
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}
	return float64(frames) / frameRate * 1000
}
