package autogen

import (
	"math"
	"testing"

	"github.com/screenglide/screenglide/internal/timeline"
)

func click(ts, x, y float64) timeline.ClickEvent {
	return timeline.ClickEvent{Timestamp: ts, X: x, Y: y, Button: "left", Action: timeline.ActionDown}
}

func TestCursorNoClicksIsNoop(t *testing.T) {
	existing := []timeline.CursorKeyframe{{Timestamp: 100, X: 5, Y: 5}}

	out := Cursor(existing, nil, CursorOptions{FrameRate: 30, DurationMs: 5000})

	if len(out) != 1 || out[0] != existing[0] {
		t.Errorf("no clicks should return input unchanged, got %+v", out)
	}
}

func TestCursorUpOnlyClicksIsNoop(t *testing.T) {
	clicks := []timeline.ClickEvent{{Timestamp: 500, Action: timeline.ActionUp}}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 5000})
	if len(out) != 0 {
		t.Errorf("up-only telemetry should generate nothing, got %+v", out)
	}
}

func TestCursorLeadAndClickKeyframes(t *testing.T) {
	// Click at t=2000, 30fps: lead keyframe at 2000 - 7/30*1000 ≈ 1766.7 at
	// the initial position, click keyframe at 2000 at the click position.
	clicks := []timeline.ClickEvent{click(2000, 300, 400)}

	out := Cursor(nil, clicks, CursorOptions{
		FrameRate: 30, DurationMs: 2050, InitialX: 10, InitialY: 20,
	})

	if len(out) != 2 {
		t.Fatalf("expected 2 keyframes, got %d: %+v", len(out), out)
	}
	if math.Abs(out[0].Timestamp-1766.6666) > 0.1 {
		t.Errorf("lead keyframe at %v, want ≈1766.7", out[0].Timestamp)
	}
	if out[0].X != 10 || out[0].Y != 20 {
		t.Errorf("lead keyframe should hold the initial position, got (%v, %v)", out[0].X, out[0].Y)
	}
	if out[1].Timestamp != 2000 || out[1].X != 300 || out[1].Y != 400 {
		t.Errorf("click keyframe wrong: %+v", out[1])
	}
}

func TestCursorLeadAnchorsAtPreviousClick(t *testing.T) {
	clicks := []timeline.ClickEvent{
		click(2000, 300, 400),
		click(5000, 700, 100),
	}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 5050})

	// Second click's lead keyframe holds the first click's location.
	var lead *timeline.CursorKeyframe
	for i := range out {
		if math.Abs(out[i].Timestamp-(5000-7.0/30*1000)) < 0.1 {
			lead = &out[i]
		}
	}
	if lead == nil {
		t.Fatalf("missing lead keyframe for second click: %+v", out)
	}
	if lead.X != 300 || lead.Y != 400 {
		t.Errorf("second lead should anchor at previous click, got (%v, %v)", lead.X, lead.Y)
	}
}

func TestCursorEarlyClickLeadClampedToStart(t *testing.T) {
	// A click at t=100 with a ~233ms lead window clamps the lead keyframe to
	// recording start instead of dropping the anchor.
	clicks := []timeline.ClickEvent{click(100, 50, 50)}

	out := Cursor(nil, clicks, CursorOptions{
		FrameRate: 30, DurationMs: 150, InitialX: 10, InitialY: 20,
	})

	if len(out) != 2 {
		t.Fatalf("expected clamped lead and click keyframes, got %+v", out)
	}
	if out[0].Timestamp != 0 || out[0].X != 10 || out[0].Y != 20 {
		t.Errorf("lead keyframe should sit at t=0 holding the initial position, got %+v", out[0])
	}
	if out[1].Timestamp != 100 {
		t.Errorf("click keyframe should survive at t=100, got %+v", out[1])
	}
}

func TestCursorClickInsideSpacingOfStartKeepsClick(t *testing.T) {
	// When the click itself lands within the minimum spacing of the clamped
	// lead, later-wins dedup keeps the click keyframe.
	clicks := []timeline.ClickEvent{click(5, 50, 50)}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 50})

	if len(out) != 1 || out[0].Timestamp != 5 || out[0].X != 50 {
		t.Errorf("expected the click keyframe alone, got %+v", out)
	}
}

func TestCursorTrailingKeyframe(t *testing.T) {
	clicks := []timeline.ClickEvent{click(1000, 200, 200)}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 5000})

	last := out[len(out)-1]
	if last.Timestamp != 5000 {
		t.Fatalf("expected trailing keyframe at 5000, got %v", last.Timestamp)
	}
	if last.X != 200 || last.Y != 200 {
		t.Errorf("trailing keyframe should reuse last position, got (%v, %v)", last.X, last.Y)
	}
}

func TestCursorNoTrailingWhenCloseToEnd(t *testing.T) {
	clicks := []timeline.ClickEvent{click(4950, 200, 200)}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 5000})

	last := out[len(out)-1]
	if last.Timestamp != 4950 {
		t.Errorf("within 100ms of the end no trailing keyframe is added, got %v", last.Timestamp)
	}
}

func TestCursorIdempotentOnOwnOutput(t *testing.T) {
	clicks := []timeline.ClickEvent{
		click(1000, 100, 100),
		click(3000, 500, 500),
	}
	opts := CursorOptions{FrameRate: 30, DurationMs: 5000}

	once := Cursor(nil, clicks, opts)
	twice := Cursor(once, clicks, opts)

	if len(once) != len(twice) {
		t.Fatalf("generator grew its own output: %d -> %d keyframes", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("keyframe %d changed: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestCursorDensitySkip(t *testing.T) {
	// Four existing keyframes against two clicks implies manual authoring.
	existing := []timeline.CursorKeyframe{
		{Timestamp: 0}, {Timestamp: 500}, {Timestamp: 1000}, {Timestamp: 1500},
	}
	clicks := []timeline.ClickEvent{click(1000, 1, 1), click(2000, 2, 2)}

	out := Cursor(existing, clicks, CursorOptions{FrameRate: 30, DurationMs: 5000})

	if len(out) != len(existing) {
		t.Errorf("dense timeline should be left alone, got %d keyframes", len(out))
	}
}

func TestCursorPreservesFarUserKeyframes(t *testing.T) {
	user := timeline.CursorKeyframe{Timestamp: 4000, X: 999, Y: 999, Shape: "text"}
	clicks := []timeline.ClickEvent{
		click(1000, 1, 1), click(2000, 2, 2), click(3000, 3, 3),
	}

	out := Cursor([]timeline.CursorKeyframe{user}, clicks, CursorOptions{FrameRate: 30, DurationMs: 4040})

	found := false
	for _, kf := range out {
		if kf == user {
			found = true
		}
	}
	if !found {
		t.Errorf("user keyframe far from generated ones must survive: %+v", out)
	}
}

func TestCursorMinimumSpacingInOutput(t *testing.T) {
	clicks := []timeline.ClickEvent{
		click(1000, 1, 1), click(1004, 2, 2), click(1009, 3, 3), click(2000, 4, 4),
	}

	out := Cursor(nil, clicks, CursorOptions{FrameRate: 30, DurationMs: 3000})

	for i := 1; i < len(out); i++ {
		if gap := out[i].Timestamp - out[i-1].Timestamp; gap < timeline.MinSpacingMs {
			t.Errorf("keyframes %d and %d only %vms apart", i-1, i, gap)
		}
	}
}

func TestZoomGeneratesInHoldRelease(t *testing.T) {
	clicks := []timeline.ClickEvent{click(2000, 300, 400)}

	out := Zoom(nil, clicks, ZoomOptions{
		FrameRate: 30, DurationMs: 10000, Level: 2.5, HoldMs: 1500,
		VideoWidth: 1920, VideoHeight: 1080,
	})

	if len(out) < 4 {
		t.Fatalf("expected lead, click, hold and release keyframes, got %d: %+v", len(out), out)
	}

	if out[0].Level != 1.0 {
		t.Errorf("lead keyframe should be identity, got level %v", out[0].Level)
	}

	var atClick *timeline.ZoomKeyframe
	for i := range out {
		if out[i].Timestamp == 2000 {
			atClick = &out[i]
		}
	}
	if atClick == nil {
		t.Fatalf("no keyframe at the click: %+v", out)
	}
	if atClick.Level != 2.5 || atClick.CenterX != 300 || atClick.CenterY != 400 {
		t.Errorf("click keyframe should zoom into the click, got %+v", atClick)
	}

	// Somewhere after the hold the level returns to identity.
	released := false
	for _, kf := range out {
		if kf.Timestamp > 3000 && kf.Level == 1.0 {
			released = true
		}
	}
	if !released {
		t.Errorf("zoom never released back to identity: %+v", out)
	}
}

func TestZoomChainsCloseClicksWithoutRelease(t *testing.T) {
	clicks := []timeline.ClickEvent{
		click(2000, 300, 400),
		click(2800, 700, 100), // inside the first click's hold window
	}

	out := Zoom(nil, clicks, ZoomOptions{
		FrameRate: 30, DurationMs: 10000, Level: 2.0, HoldMs: 1500,
		VideoWidth: 1920, VideoHeight: 1080,
	})

	// No identity keyframe strictly between the two clicks.
	for _, kf := range out {
		if kf.Timestamp > 2000 && kf.Timestamp < 2800 && kf.Level == 1.0 {
			t.Errorf("zoom released between chained clicks: %+v", kf)
		}
	}
}

func TestZoomMergesWithExistingKeyframes(t *testing.T) {
	user := timeline.ZoomKeyframe{Timestamp: 9000, CenterX: 50, CenterY: 50, Level: 3.0}
	clicks := []timeline.ClickEvent{
		click(1000, 1, 1), click(2000, 2, 2), click(3000, 3, 3),
	}

	out := Zoom([]timeline.ZoomKeyframe{user}, clicks, ZoomOptions{
		FrameRate: 30, DurationMs: 9050, Level: 2.0, HoldMs: 1500,
		VideoWidth: 1920, VideoHeight: 1080,
	})

	found := false
	for _, kf := range out {
		if kf == user {
			found = true
		}
	}
	if !found {
		t.Errorf("manual zoom keyframe was discarded by regeneration: %+v", out)
	}
}

func TestZoomEarlyClickLeadClampedToStart(t *testing.T) {
	clicks := []timeline.ClickEvent{click(100, 50, 50)}

	out := Zoom(nil, clicks, ZoomOptions{
		FrameRate: 30, DurationMs: 5000, Level: 2.0, HoldMs: 1500,
		VideoWidth: 1920, VideoHeight: 1080,
	})

	if out[0].Timestamp != 0 || out[0].Level != 1.0 {
		t.Errorf("expected identity lead clamped to recording start, got %+v", out[0])
	}
}

func TestZoomNoClicksIsNoop(t *testing.T) {
	existing := []timeline.ZoomKeyframe{{Timestamp: 100, Level: 2}}

	out := Zoom(existing, nil, ZoomOptions{FrameRate: 30, DurationMs: 5000})
	if len(out) != 1 || out[0] != existing[0] {
		t.Errorf("no clicks should return input unchanged, got %+v", out)
	}
}
