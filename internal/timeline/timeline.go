// Package timeline holds the time-indexed data model shared by the whole
// engine: cursor and zoom keyframe sequences, zoom sections, and raw click
// events. All timestamps are non-negative milliseconds relative to recording
// start.
package timeline

import "sort"

// MinSpacingMs is the minimum distance between two keyframes on the same
// timeline. Entries closer than this are merged during Normalize, keeping the
// later one.
const MinSpacingMs = 10.0

// CursorKeyframe is an explicit cursor state anchor. X and Y are in source
// video pixels. Size, Shape and Color are optional; zero values mean
// "inherit from the global cursor configuration". Easing governs the segment
// starting at this keyframe.
type CursorKeyframe struct {
	Timestamp float64 `yaml:"timestamp"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Size      float64 `yaml:"size,omitempty"`
	Shape     string  `yaml:"shape,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Easing    string  `yaml:"easing,omitempty"`
}

// Time implements Keyed.
func (k CursorKeyframe) Time() float64 { return k.Timestamp }

// ZoomKeyframe is an explicit zoom state anchor. Level is a multiplier where
// 1.0 means no zoom. CropWidth/CropHeight are optional; when zero they
// resolve to videoWidth/Level and videoHeight/Level at evaluation time.
type ZoomKeyframe struct {
	Timestamp  float64 `yaml:"timestamp"`
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	Level      float64 `yaml:"level"`
	CropWidth  float64 `yaml:"crop_width,omitempty"`
	CropHeight float64 `yaml:"crop_height,omitempty"`
	Easing     string  `yaml:"easing,omitempty"`
}

// Time implements Keyed.
func (k ZoomKeyframe) Time() float64 { return k.Timestamp }

// ZoomSection is the coarse authoring representation of zoom: a flat interval
// with one scale and center, no internal easing. Sections are compiled into
// per-frame regions by the zoompath package, or into keyframes by
// SectionsToKeyframes.
type ZoomSection struct {
	StartTime float64 `yaml:"start_time"`
	EndTime   float64 `yaml:"end_time"`
	Scale     float64 `yaml:"scale"`
	CenterX   float64 `yaml:"center_x"`
	CenterY   float64 `yaml:"center_y"`
}

// Action distinguishes press from release in a click event.
type Action string

const (
	ActionDown Action = "down"
	ActionUp   Action = "up"
)

// ClickEvent is one raw telemetry sample from the capture subsystem. The
// engine never mutates click events.
type ClickEvent struct {
	Timestamp float64 `yaml:"timestamp"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Button    string  `yaml:"button"`
	Action    Action  `yaml:"action"`
}

// Keyed is anything addressable by a millisecond timestamp. Both keyframe
// payload types implement it, which lets sorting, dedup and merge logic be
// written once.
type Keyed interface {
	Time() float64
}

// Normalize returns keyframes sorted ascending by timestamp with entries
// closer than MinSpacingMs merged, preferring the later one. The input slice
// is not modified. Normalize is idempotent.
func Normalize[K Keyed](kfs []K) []K {
	if len(kfs) == 0 {
		return kfs
	}

	sorted := make([]K, len(kfs))
	copy(sorted, kfs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time() < sorted[j].Time()
	})

	// Forward pass: when the gap to the previously retained keyframe is
	// below tolerance, the current (later) one replaces it.
	out := sorted[:1]
	for _, kf := range sorted[1:] {
		if kf.Time()-out[len(out)-1].Time() < MinSpacingMs {
			out[len(out)-1] = kf
		} else {
			out = append(out, kf)
		}
	}
	return out
}

// SectionsToKeyframes converts legacy zoom sections into the canonical
// keyframe representation. Each section becomes four keyframes: identity at
// the transition lead-in, the section state at StartTime and EndTime, and
// identity again after the transition tail. transitionMs controls how long
// the ramp in/out of the section lasts; videoWidth/videoHeight supply the
// identity center.
func SectionsToKeyframes(sections []ZoomSection, videoWidth, videoHeight, transitionMs float64) []ZoomKeyframe {
	if len(sections) == 0 {
		return nil
	}
	if transitionMs <= 0 {
		transitionMs = MinSpacingMs
	}

	identity := func(ts float64) ZoomKeyframe {
		return ZoomKeyframe{
			Timestamp: ts,
			CenterX:   videoWidth / 2,
			CenterY:   videoHeight / 2,
			Level:     1.0,
		}
	}

	var kfs []ZoomKeyframe
	for _, s := range sections {
		if s.EndTime <= s.StartTime {
			continue
		}
		lead := s.StartTime - transitionMs
		if lead < 0 {
			lead = 0
		}
		kfs = append(kfs,
			identity(lead),
			ZoomKeyframe{Timestamp: s.StartTime, CenterX: s.CenterX, CenterY: s.CenterY, Level: s.Scale},
			ZoomKeyframe{Timestamp: s.EndTime, CenterX: s.CenterX, CenterY: s.CenterY, Level: s.Scale},
			identity(s.EndTime+transitionMs),
		)
	}
	return Normalize(kfs)
}
