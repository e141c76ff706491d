// Package config defines the global engine configuration: the cursor
// defaults inherited by keyframes that omit a field, the smoothing and
// stabilization constants, the click pulse shape, and zoom generation
// parameters.
package config

import (
	"github.com/screenglide/screenglide/internal/zoompath"
)

// Config contains engine-wide settings. Keyframes inherit the Cursor*
// defaults for any optional field they leave unset.
type Config struct {
	// CursorSize is the cursor diameter in source-video pixels.
	CursorSize float64 `koanf:"cursor_size"`

	// CursorShape names the default cursor shape, e.g. "pointer".
	CursorShape string `koanf:"cursor_shape"`

	// CursorColor is the default cursor tint.
	CursorColor string `koanf:"cursor_color"`

	// SmoothingTau is the glide time constant in seconds.
	SmoothingTau float64 `koanf:"smoothing_tau"`

	// ShapeDwellMs is how long a new cursor shape must persist before the
	// stabilizer commits it.
	ShapeDwellMs float64 `koanf:"shape_dwell_ms"`

	// PulseDurationMs and PulseMinScale shape the click bounce.
	PulseDurationMs float64 `koanf:"pulse_duration_ms"`
	PulseMinScale   float64 `koanf:"pulse_min_scale"`

	// Zoom configures section compilation and click-driven zoom generation.
	Zoom zoompath.Config `koanf:"zoom"`

	// ZoomHoldMs is how long a click-driven zoom stays on its target.
	ZoomHoldMs float64 `koanf:"zoom_hold_ms"`

	// LeadFrames is the pre-click travel window of the auto-generator, in
	// frames.
	LeadFrames int `koanf:"lead_frames"`
}

// New returns the engine defaults.
func New() *Config {
	return &Config{
		CursorSize:      24,
		CursorShape:     "pointer",
		CursorColor:     "#000000",
		SmoothingTau:    0.15,
		ShapeDwellMs:    120,
		PulseDurationMs: 600,
		PulseMinScale:   0.8,
		Zoom: zoompath.Config{
			Enabled:      true,
			Level:        2.0,
			TransitionMs: zoompath.DefaultTransitionMs,
		},
		ZoomHoldMs: 1500,
		LeadFrames: 7,
	}
}
