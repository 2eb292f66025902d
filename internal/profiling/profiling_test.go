package profiling

import (
	"strings"
	"testing"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		Track("test.op")()
	}
	s, ok := Snapshot()["test.op"]
	if !ok {
		t.Fatal("expected test.op sample")
	}
	if s.Calls != 3 {
		t.Errorf("calls = %d, want 3", s.Calls)
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Error("ResetFrame should clear samples")
	}
}

func TestTopNLimits(t *testing.T) {
	ResetFrame()
	Track("a")()
	Track("b")()
	out := TopN(1)
	if strings.Count(out, ",") != 0 || out == "" {
		t.Errorf("TopN(1) = %q", out)
	}
	if got := TopN(10); strings.Count(got, ",") != 1 {
		t.Errorf("TopN(10) = %q, want two entries", got)
	}
}
