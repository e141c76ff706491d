package motion

import (
	"testing"

	"github.com/screenglide/screenglide/internal/timeline"
)

func TestStabilizerSuppressesTransient(t *testing.T) {
	st := NewShapeStabilizer("pointer", 100)
	st.SetKeyframes([]timeline.CursorKeyframe{
		{Timestamp: 0, Shape: "pointer"},
		{Timestamp: 1000, Shape: "text"},
		{Timestamp: 1030, Shape: "pointer"}, // flaps back within the window
		{Timestamp: 2000, Shape: "pointer"},
	})

	if got := st.Update("text", 1000); got != "pointer" {
		t.Errorf("transient shape should be suppressed, got %q", got)
	}
}

func TestStabilizerCommitsPersistentShape(t *testing.T) {
	st := NewShapeStabilizer("pointer", 100)
	st.SetKeyframes([]timeline.CursorKeyframe{
		{Timestamp: 0, Shape: "pointer"},
		{Timestamp: 1000, Shape: "text"},
		{Timestamp: 1050, Shape: "text"},
		{Timestamp: 2000, Shape: "text"},
	})

	if got := st.Update("text", 1000); got != "text" {
		t.Errorf("persistent shape should commit, got %q", got)
	}
	if st.Committed() != "text" {
		t.Errorf("committed state not updated: %q", st.Committed())
	}
}

func TestStabilizerCommitsWhenNoLookahead(t *testing.T) {
	// No keyframes inside the window means nothing contradicts the shape.
	st := NewShapeStabilizer("pointer", 100)
	st.SetKeyframes([]timeline.CursorKeyframe{
		{Timestamp: 0, Shape: "pointer"},
		{Timestamp: 5000, Shape: "text"},
	})

	if got := st.Update("text", 5000); got != "text" {
		t.Errorf("shape with empty look-ahead window should commit, got %q", got)
	}
}

func TestStabilizerIgnoresShapelessKeyframes(t *testing.T) {
	st := NewShapeStabilizer("pointer", 100)
	st.SetKeyframes([]timeline.CursorKeyframe{
		{Timestamp: 1000, Shape: "text"},
		{Timestamp: 1040}, // position-only keyframe, no shape opinion
		{Timestamp: 1080, Shape: "text"},
	})

	if got := st.Update("text", 1000); got != "text" {
		t.Errorf("shapeless keyframes must not veto a commit, got %q", got)
	}
}

func TestStabilizerEmptyRawKeepsCommitted(t *testing.T) {
	st := NewShapeStabilizer("pointer", 100)

	if got := st.Update("", 500); got != "pointer" {
		t.Errorf("empty raw shape should keep committed, got %q", got)
	}
}

func TestStabilizerReset(t *testing.T) {
	st := NewShapeStabilizer("pointer", 100)
	st.SetKeyframes([]timeline.CursorKeyframe{
		{Timestamp: 1000, Shape: "text"},
		{Timestamp: 2000, Shape: "text"},
	})
	st.Update("text", 1000)

	st.Reset("crosshair")
	if st.Committed() != "crosshair" {
		t.Errorf("reset should force committed shape, got %q", st.Committed())
	}
}
