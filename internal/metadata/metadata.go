// Package metadata defines the recording metadata document: everything the
// engine needs to evaluate a recording, persisted as YAML. The schema is a
// stable contract with the host application; documents round-trip losslessly.
package metadata

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/screenglide/screenglide/internal/timeline"
	"github.com/screenglide/screenglide/internal/zoompath"
)

// CurrentVersion is written into new documents.
const CurrentVersion = "1.0"

// CursorTrack holds the cursor timeline of a recording.
type CursorTrack struct {
	Keyframes []timeline.CursorKeyframe `yaml:"keyframes,omitempty"`
}

// ZoomTrack holds both zoom representations. Keyframes are canonical;
// Sections are the coarse authoring layer kept for section-based editing and
// legacy documents, compiled to per-frame regions by the zoompath package.
type ZoomTrack struct {
	Keyframes []timeline.ZoomKeyframe `yaml:"keyframes,omitempty"`
	Sections  []timeline.ZoomSection  `yaml:"sections,omitempty"`
	Config    zoompath.Config         `yaml:"config"`
}

// Document is one recording's metadata.
type Document struct {
	Version     string  `yaml:"version"`
	RecordingID string  `yaml:"recording_id"`
	VideoWidth  float64 `yaml:"video_width"`
	VideoHeight float64 `yaml:"video_height"`
	FrameRate   float64 `yaml:"frame_rate"`
	DurationMs  float64 `yaml:"duration_ms"`

	Cursor CursorTrack           `yaml:"cursor"`
	Zoom   ZoomTrack             `yaml:"zoom"`
	Clicks []timeline.ClickEvent `yaml:"clicks,omitempty"`
}

// New creates an empty document for a recording of the given dimensions.
func New(videoWidth, videoHeight, frameRate, durationMs float64) *Document {
	return &Document{
		Version:     CurrentVersion,
		RecordingID: uuid.NewString(),
		VideoWidth:  videoWidth,
		VideoHeight: videoHeight,
		FrameRate:   frameRate,
		DurationMs:  durationMs,
		Zoom: ZoomTrack{
			Config: zoompath.Config{
				Enabled:      true,
				Level:        2.0,
				TransitionMs: zoompath.DefaultTransitionMs,
			},
		},
	}
}

// Normalize re-sorts and dedups both keyframe timelines. Call after any
// keyframe add/remove/update; loading already normalizes.
func (d *Document) Normalize() {
	d.Cursor.Keyframes = timeline.Normalize(d.Cursor.Keyframes)
	d.Zoom.Keyframes = timeline.Normalize(d.Zoom.Keyframes)
}

// MigrateSections converts legacy zoom sections into canonical keyframes,
// merging with whatever keyframes already exist, and clears the section list.
// One-way: documents saved afterwards carry keyframes only.
func (d *Document) MigrateSections() {
	if len(d.Zoom.Sections) == 0 {
		return
	}
	converted := timeline.SectionsToKeyframes(
		d.Zoom.Sections, d.VideoWidth, d.VideoHeight, d.Zoom.Config.TransitionMs)
	d.Zoom.Keyframes = timeline.Normalize(append(d.Zoom.Keyframes, converted...))
	d.Zoom.Sections = nil
}

// Read loads a document from a YAML file and normalizes its timelines.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Write persists a document as YAML.
func Write(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
