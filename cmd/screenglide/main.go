// Command screenglide evaluates recording metadata files and writes
// per-frame parameter traces: the exact cursor, pulse and zoom values a
// renderer would consume for every frame of the recording. It also runs the
// one-shot metadata transforms (keyframe auto-generation, section migration)
// and can persist their result back to the metadata file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/screenglide/screenglide/internal/config"
	"github.com/screenglide/screenglide/internal/engine"
	"github.com/screenglide/screenglide/internal/metadata"
	"github.com/screenglide/screenglide/internal/system"
)

type cursorTrace struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Shape string  `yaml:"shape"`
	Color string  `yaml:"color"`
}

type zoomTrace struct {
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	Level      float64 `yaml:"level"`
	CropWidth  float64 `yaml:"crop_width"`
	CropHeight float64 `yaml:"crop_height"`
}

type frameTrace struct {
	Frame      int          `yaml:"frame"`
	TimeMs     float64      `yaml:"time_ms"`
	Cursor     *cursorTrace `yaml:"cursor,omitempty"`
	PulseScale float64      `yaml:"pulse_scale"`
	Zoom       zoomTrace    `yaml:"zoom"`
}

type documentTrace struct {
	RecordingID string       `yaml:"recording_id"`
	FrameRate   float64      `yaml:"frame_rate"`
	DurationMs  float64      `yaml:"duration_ms"`
	Frames      []frameTrace `yaml:"frames"`
}

func main() {
	klog.InitFlags(nil)

	autogenPtr := flag.Bool("autogen", false, "Generate cursor and zoom keyframes from recorded clicks before evaluating")
	migratePtr := flag.Bool("migrate-sections", false, "Convert legacy zoom sections into zoom keyframes")
	writePtr := flag.Bool("write", false, "Write transformed metadata back to its file")
	outPtr := flag.String("out", "traces", "Directory for per-frame parameter traces")
	fpsPtr := flag.Float64("fps", 0, "Frame rate override (0 keeps the rate recorded in the metadata)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Documents processed in parallel")
	statsPtr := flag.Bool("stats", false, "Print a performance report at the end")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		klog.Exitf("usage: screenglide [flags] metadata.yaml [metadata.yaml ...]")
	}

	cfg, err := config.Load()
	if err != nil {
		klog.Exitf("load config: %v", err)
	}

	if err := os.MkdirAll(*outPtr, 0755); err != nil {
		klog.Exitf("create output directory: %v", err)
	}

	tracker := system.NewTracker()

	var g errgroup.Group
	g.SetLimit(*workersPtr)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			frames, err := processDocument(path, cfg, *outPtr, *fpsPtr, *autogenPtr, *migratePtr, *writePtr)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			tracker.AddDocument(frames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		klog.Exitf("%v", err)
	}

	if *statsPtr {
		fmt.Print(tracker.Report())
	}
	fmt.Printf("[+] Done: %d document(s) -> %s\n", len(paths), *outPtr)
}

func processDocument(path string, cfg *config.Config, outDir string, fps float64, autogen, migrate, write bool) (int, error) {
	doc, err := metadata.Read(path)
	if err != nil {
		return 0, err
	}
	if fps > 0 {
		doc.FrameRate = fps
	}

	if migrate {
		doc.MigrateSections()
	}
	if autogen {
		engine.GenerateKeyframes(doc, cfg)
	}
	if write && (autogen || migrate) {
		if err := metadata.Write(doc, path); err != nil {
			return 0, err
		}
		klog.Infof("updated metadata %s", path)
	}

	ev := engine.New(cfg, doc, engine.WithSmoothing(false))
	frames := ev.FrameCount()

	trace := documentTrace{
		RecordingID: doc.RecordingID,
		FrameRate:   doc.FrameRate,
		DurationMs:  doc.DurationMs,
		Frames:      make([]frameTrace, 0, frames),
	}

	for i := 0; i < frames; i++ {
		state := ev.EvaluateFrame(i)
		ft := frameTrace{
			Frame:      i,
			TimeMs:     float64(i) * 1000 / doc.FrameRate,
			PulseScale: state.PulseScale,
			Zoom: zoomTrace{
				CenterX:    state.Zoom.CenterX,
				CenterY:    state.Zoom.CenterY,
				Level:      state.Zoom.Level,
				CropWidth:  state.Zoom.CropWidth,
				CropHeight: state.Zoom.CropHeight,
			},
		}
		if c := state.Cursor; c != nil {
			ft.Cursor = &cursorTrace{X: c.X, Y: c.Y, Size: c.Size, Shape: c.Shape, Color: c.Color}
		}
		trace.Frames = append(trace.Frames, ft)
	}

	out := tracePath(outDir, path)
	data, err := yaml.Marshal(&trace)
	if err != nil {
		return 0, fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return 0, fmt.Errorf("write trace: %w", err)
	}

	klog.Infof("traced %s: %d frames -> %s", doc.RecordingID, frames, out)
	return frames, nil
}

func tracePath(outDir, metadataPath string) string {
	base := filepath.Base(metadataPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+".trace.yaml")
}
