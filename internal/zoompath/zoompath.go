// Package zoompath compiles coarse zoom sections into a per-video-frame array
// of zoom regions. Preview (which maps wall time to a frame index) and export
// (which iterates frame indices directly) both sample the same materialized
// array, so the zoom state they see per frame is identical by construction.
package zoompath

import (
	"math"
	"sort"

	"github.com/screenglide/screenglide/internal/easing"
	"github.com/screenglide/screenglide/internal/timeline"
)

// Region is the fully resolved zoom crop for one video frame.
type Region struct {
	CenterX    float64
	CenterY    float64
	Level      float64
	CropWidth  float64
	CropHeight float64
}

// Config is the global zoom configuration the generator consumes.
type Config struct {
	// Enabled gates the whole effect; disabled output is identity for every
	// frame.
	Enabled bool `koanf:"enabled"`

	// Level is the fallback zoom multiplier for sections that do not carry
	// their own scale.
	Level float64 `koanf:"level"`

	// TransitionMs is how long the eased ramp into and out of a section
	// lasts.
	TransitionMs float64 `koanf:"transition_ms"`
}

// DefaultTransitionMs is used when the config does not specify a ramp length.
const DefaultTransitionMs = 500.0

// Generate materializes one Region per frame index floor(t/(1000/frameRate))
// for the whole recording. Frames outside any section get the identity zoom.
// Zero or negative duration or frame rate yields an empty slice, never a
// division by zero.
func Generate(sections []timeline.ZoomSection, videoWidth, videoHeight float64, cfg Config, frameRate, durationMs float64) []Region {
	if durationMs <= 0 || frameRate <= 0 {
		return nil
	}

	frameCount := int(math.Ceil(durationMs * frameRate / 1000))
	if frameCount <= 0 {
		return nil
	}

	identity := identityRegion(videoWidth, videoHeight)
	regions := make([]Region, frameCount)

	if !cfg.Enabled || len(sections) == 0 {
		for i := range regions {
			regions[i] = identity
		}
		return regions
	}

	sorted := make([]timeline.ZoomSection, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	frameDur := 1000 / frameRate
	for i := range regions {
		t := float64(i) * frameDur
		regions[i] = regionAt(sorted, t, videoWidth, videoHeight, cfg, identity)
	}
	return regions
}

// regionAt resolves the zoom state at time t against the sorted section list.
func regionAt(sections []timeline.ZoomSection, t, videoWidth, videoHeight float64, cfg Config, identity Region) Region {
	idx := -1
	for i, s := range sections {
		if s.StartTime <= t && t <= s.EndTime {
			// Later sections win on overlap: the more recent edit is the
			// more specific one.
			idx = i
		}
	}
	if idx == -1 {
		return identity
	}

	s := sections[idx]
	base := sectionRegion(s, videoWidth, videoHeight, cfg)

	trans := cfg.TransitionMs
	if trans <= 0 {
		trans = DefaultTransitionMs
	}
	// A short section squeezes its ramps so intro and outro never overlap.
	if span := s.EndTime - s.StartTime; trans > span/2 {
		trans = span / 2
	}
	if trans <= 0 {
		return base
	}

	// Ramp in, from identity or from a touching predecessor's state.
	if t < s.StartTime+trans {
		from := identity
		if idx > 0 && sections[idx-1].EndTime >= s.StartTime {
			from = sectionRegion(sections[idx-1], videoWidth, videoHeight, cfg)
		}
		p := easing.EaseInOut.Apply((t - s.StartTime) / trans)
		return blend(from, base, p)
	}

	// Ramp out, unless a touching successor takes over.
	if t > s.EndTime-trans {
		if idx < len(sections)-1 && sections[idx+1].StartTime <= s.EndTime {
			return base
		}
		p := easing.EaseInOut.Apply((t - (s.EndTime - trans)) / trans)
		return blend(base, identity, p)
	}

	return base
}

func sectionRegion(s timeline.ZoomSection, videoWidth, videoHeight float64, cfg Config) Region {
	scale := s.Scale
	if scale <= 0 {
		scale = cfg.Level
	}
	if scale <= 0 {
		scale = 1.0
	}
	return Region{
		CenterX:    s.CenterX,
		CenterY:    s.CenterY,
		Level:      scale,
		CropWidth:  videoWidth / scale,
		CropHeight: videoHeight / scale,
	}
}

func identityRegion(videoWidth, videoHeight float64) Region {
	return Region{
		CenterX:    videoWidth / 2,
		CenterY:    videoHeight / 2,
		Level:      1.0,
		CropWidth:  videoWidth,
		CropHeight: videoHeight,
	}
}

func blend(a, b Region, p float64) Region {
	return Region{
		CenterX:    easing.Lerp(a.CenterX, b.CenterX, p),
		CenterY:    easing.Lerp(a.CenterY, b.CenterY, p),
		Level:      easing.Lerp(a.Level, b.Level, p),
		CropWidth:  easing.Lerp(a.CropWidth, b.CropWidth, p),
		CropHeight: easing.Lerp(a.CropHeight, b.CropHeight, p),
	}
}
