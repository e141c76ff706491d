// Package system collects process-level resource usage for the end-of-run
// statistics report.
package system

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Tracker accumulates run statistics across documents. Safe for concurrent
// AddDocument calls.
type Tracker struct {
	mu        sync.Mutex
	start     time.Time
	proc      *process.Process
	documents int
	frames    int
}

// NewTracker starts the clock and attaches to the current process.
func NewTracker() *Tracker {
	t := &Tracker{start: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		t.proc = p
	}
	return t
}

// AddDocument records one processed document and its frame count.
func (t *Tracker) AddDocument(frames int) {
	t.mu.Lock()
	t.documents++
	t.frames += frames
	t.mu.Unlock()
}

// Report formats the run summary: wall time, CPU and memory usage, and the
// effective evaluation throughput.
func (t *Tracker) Report() string {
	t.mu.Lock()
	documents, frames := t.documents, t.frames
	t.mu.Unlock()

	elapsed := time.Since(t.start)
	fps := 0.0
	if elapsed.Seconds() > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}

	var cpuPercent, rssMB float64
	if t.proc != nil {
		if pct, err := t.proc.CPUPercent(); err == nil {
			cpuPercent = pct
		}
		if mi, err := t.proc.MemoryInfo(); err == nil && mi != nil {
			rssMB = float64(mi.RSS) / (1 << 20)
		}
	}

	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"CPU: %.1f%%\n"+
			"RSS: %.1f MB\n"+
			"Documents: %d\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		elapsed.Seconds(), cpuPercent, rssMB, documents, frames, fps,
	)
}
