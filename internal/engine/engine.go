// Package engine ties the evaluation core together for the two consumers the
// renderer exposes: interactive preview (arbitrary timestamps, wall-clock
// smoothing) and frame-by-frame export (fixed frame indices, raw
// interpolation). One Evaluator serves exactly one playback or export
// session; it owns its smoother, stabilizer and zoom path cache and must not
// be shared between concurrent consumers.
package engine

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/screenglide/screenglide/internal/autogen"
	"github.com/screenglide/screenglide/internal/config"
	"github.com/screenglide/screenglide/internal/interp"
	"github.com/screenglide/screenglide/internal/metadata"
	"github.com/screenglide/screenglide/internal/motion"
	"github.com/screenglide/screenglide/internal/pulse"
	"github.com/screenglide/screenglide/internal/zoompath"
)

// FrameState is everything a renderer needs to paint one frame. Cursor is
// nil when the recording has no cursor timeline; the renderer skips drawing.
type FrameState struct {
	Cursor     *interp.CursorState
	PulseScale float64
	Zoom       zoompath.Region
}

// Evaluator evaluates one recording.
type Evaluator struct {
	cfg *config.Config
	doc *metadata.Document

	smoother   *motion.Smoother
	stabilizer *motion.ShapeStabilizer
	cache      *zoompath.Cache

	smoothing bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSmoothing toggles the glide filter. Export sessions disable it so the
// interpolator's raw output is sampled directly.
func WithSmoothing(enabled bool) Option {
	return func(e *Evaluator) { e.smoothing = enabled }
}

// WithCacheMetrics wires the zoom path cache's hit/miss counters to a
// Prometheus registerer.
func WithCacheMetrics(reg prometheus.Registerer) Option {
	return func(e *Evaluator) { e.cache = zoompath.NewCache(zoompath.WithMetrics(reg)) }
}

// New creates an evaluator for doc. The smoother and stabilizer start on the
// state at t=0.
func New(cfg *config.Config, doc *metadata.Document, opts ...Option) *Evaluator {
	e := &Evaluator{
		cfg:       cfg,
		doc:       doc,
		cache:     zoompath.NewCache(),
		smoothing: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	var x, y float64
	shape := cfg.CursorShape
	if state := interp.Cursor(doc.Cursor.Keyframes, 0); state != nil {
		x, y = state.X, state.Y
		if state.Shape != "" {
			shape = state.Shape
		}
	}
	e.smoother = motion.NewSmoother(x, y, cfg.SmoothingTau)
	e.stabilizer = motion.NewShapeStabilizer(shape, cfg.ShapeDwellMs)
	e.stabilizer.SetKeyframes(doc.Cursor.Keyframes)
	return e
}

// Evaluate computes the frame state at video time t (ms), advancing the
// stateful filters by dt seconds of wall-clock time. This is the interactive
// preview path; t must progress sequentially between calls. After any
// non-sequential jump, call Seek first.
func (e *Evaluator) Evaluate(t, dt float64) FrameState {
	state := FrameState{
		PulseScale: pulse.ScaleAt(t, e.doc.Clicks, e.cfg.PulseDurationMs, e.cfg.PulseMinScale),
		Zoom:       e.zoomAt(t, e.frameIndex(t)),
	}

	cursor := interp.Cursor(e.doc.Cursor.Keyframes, t)
	if cursor == nil {
		return state
	}
	e.applyDefaults(cursor)

	cursor.Shape = e.stabilizer.Update(cursor.Shape, t)
	if e.smoothing {
		e.smoother.SetTarget(cursor.X, cursor.Y)
		cursor.X, cursor.Y = e.smoother.Update(dt)
	}

	state.Cursor = cursor
	return state
}

// EvaluateFrame computes the frame state for a fixed frame index, the export
// path: raw interpolated positions, no glide. Frame indices must be visited
// in ascending order for the shape stabilizer to see the same sequence the
// preview does.
func (e *Evaluator) EvaluateFrame(idx int) FrameState {
	t := e.frameTime(idx)

	state := FrameState{
		PulseScale: pulse.ScaleAt(t, e.doc.Clicks, e.cfg.PulseDurationMs, e.cfg.PulseMinScale),
		Zoom:       e.zoomAt(t, idx),
	}

	cursor := interp.Cursor(e.doc.Cursor.Keyframes, t)
	if cursor == nil {
		return state
	}
	e.applyDefaults(cursor)
	cursor.Shape = e.stabilizer.Update(cursor.Shape, t)

	state.Cursor = cursor
	return state
}

// Seek implements the discontinuous-jump protocol: it snaps the smoother and
// stabilizer onto the interpolated state at t so the next Evaluate does not
// glide in from a stale position.
func (e *Evaluator) Seek(t float64) {
	cursor := interp.Cursor(e.doc.Cursor.Keyframes, t)
	if cursor == nil {
		e.smoother.Reset(0, 0)
		e.stabilizer.Reset(e.cfg.CursorShape)
		return
	}
	e.applyDefaults(cursor)
	e.smoother.Reset(cursor.X, cursor.Y)
	e.stabilizer.Reset(cursor.Shape)
}

// FrameCount returns the number of frames implied by the document's duration
// and frame rate.
func (e *Evaluator) FrameCount() int {
	if e.doc.DurationMs <= 0 || e.doc.FrameRate <= 0 {
		return 0
	}
	return int(math.Ceil(e.doc.DurationMs * e.doc.FrameRate / 1000))
}

// CacheStats exposes the zoom path cache counters.
func (e *Evaluator) CacheStats() (hits, misses uint64) {
	return e.cache.Stats()
}

func (e *Evaluator) frameTime(idx int) float64 {
	if e.doc.FrameRate <= 0 {
		return 0
	}
	return float64(idx) * 1000 / e.doc.FrameRate
}

// frameIndex maps a video time onto the frame grid. Rounding to the nearest
// frame keeps exact frame times stable against the one-ULP error of the
// time-to-index round trip, so preview and export resolve the same region
// for the same frame.
func (e *Evaluator) frameIndex(t float64) int {
	if e.doc.FrameRate <= 0 {
		return 0
	}
	return int(math.Round(t * e.doc.FrameRate / 1000))
}

// applyDefaults fills cursor fields left unset by the timeline from the
// global configuration.
func (e *Evaluator) applyDefaults(c *interp.CursorState) {
	if c.Size <= 0 {
		c.Size = e.cfg.CursorSize
	}
	if c.Shape == "" {
		c.Shape = e.cfg.CursorShape
	}
	if c.Color == "" {
		c.Color = e.cfg.CursorColor
	}
}

// zoomAt resolves the zoom region for time t. Sections, when present, drive
// the materialized per-frame path sampled by idx (the export path passes its
// frame index straight through; the preview path derives it via frameIndex);
// otherwise the canonical zoom keyframes are interpolated directly.
func (e *Evaluator) zoomAt(t float64, idx int) zoompath.Region {
	doc := e.doc
	if len(doc.Zoom.Sections) > 0 {
		regions := e.cache.Regions(
			doc.Zoom.Sections, doc.VideoWidth, doc.VideoHeight,
			doc.Zoom.Config, doc.FrameRate, doc.DurationMs)
		if len(regions) == 0 {
			return identity(doc)
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(regions) {
			idx = len(regions) - 1
		}
		return regions[idx]
	}

	state := interp.Zoom(doc.Zoom.Keyframes, t, doc.VideoWidth, doc.VideoHeight)
	return zoompath.Region{
		CenterX:    state.CenterX,
		CenterY:    state.CenterY,
		Level:      state.Level,
		CropWidth:  state.CropWidth,
		CropHeight: state.CropHeight,
	}
}

func identity(doc *metadata.Document) zoompath.Region {
	return zoompath.Region{
		CenterX:    doc.VideoWidth / 2,
		CenterY:    doc.VideoHeight / 2,
		Level:      1.0,
		CropWidth:  doc.VideoWidth,
		CropHeight: doc.VideoHeight,
	}
}

// GenerateKeyframes runs cursor and zoom auto-generation over the document's
// click telemetry, merging with whatever keyframes it already carries, and
// re-normalizes the result. One-shot; call on metadata load or edit, never
// per frame.
func GenerateKeyframes(doc *metadata.Document, cfg *config.Config) {
	var initX, initY float64
	if state := interp.Cursor(doc.Cursor.Keyframes, 0); state != nil {
		initX, initY = state.X, state.Y
	} else {
		initX, initY = doc.VideoWidth/2, doc.VideoHeight/2
	}

	doc.Cursor.Keyframes = autogen.Cursor(doc.Cursor.Keyframes, doc.Clicks, autogen.CursorOptions{
		FrameRate:  doc.FrameRate,
		DurationMs: doc.DurationMs,
		InitialX:   initX,
		InitialY:   initY,
		LeadFrames: cfg.LeadFrames,
	})

	doc.Zoom.Keyframes = autogen.Zoom(doc.Zoom.Keyframes, doc.Clicks, autogen.ZoomOptions{
		FrameRate:   doc.FrameRate,
		DurationMs:  doc.DurationMs,
		Level:       cfg.Zoom.Level,
		HoldMs:      cfg.ZoomHoldMs,
		LeadFrames:  cfg.LeadFrames,
		VideoWidth:  doc.VideoWidth,
		VideoHeight: doc.VideoHeight,
	})

	doc.Normalize()
}
