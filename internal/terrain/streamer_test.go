package terrain

import (
	"context"
	"testing"

	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/time/rate"
)

func newTestStreamer(radius int, sink MeshSink) (*Manager, *Streamer) {
	cfg := testConfig(radius)
	m := NewManager(cfg, flatNoise, sink, quietLogger())
	return m, NewStreamer(cfg, m)
}

func TestStreamerInitialWindow(t *testing.T) {
	m, s := newTestStreamer(10, nil)

	if s.Viewpoint().IsValid() {
		t.Fatal("viewpoint set before first rebuild")
	}
	if !s.Update(mgl32.Vec3{0.5, 40, 0.5}) {
		t.Fatal("first update did not start a rebuild")
	}
	if !s.Busy() || s.Pending() != 441 {
		t.Fatalf("busy %v pending %d", s.Busy(), s.Pending())
	}
	if err := s.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if s.ActiveCount() != 441 || m.Stats().Live != 441 {
		t.Errorf("active %d live %d, want 441", s.ActiveCount(), m.Stats().Live)
	}
	if s.Viewpoint() != (world.Index{}) {
		t.Errorf("viewpoint %v", s.Viewpoint())
	}
	if s.Update(mgl32.Vec3{7.9, 10, 7.9}) {
		t.Error("update within the same chunk started a rebuild")
	}
}

func TestStreamerMoveDeactivatesTrailingColumn(t *testing.T) {
	sink := newRecordingSink()
	m, s := newTestStreamer(10, sink)
	s.Update(mgl32.Vec3{0.5, 0, 0.5})
	s.Run(context.Background(), nil)

	// One chunk along +X.
	if !s.Update(mgl32.Vec3{8.5, 0, 0.5}) {
		t.Fatal("move did not start a rebuild")
	}
	if len(sink.deactivated) != 21 {
		t.Fatalf("deactivated %d chunks, want 21", len(sink.deactivated))
	}
	for index, n := range sink.deactivated {
		if index.X != -10 || n != 1 {
			t.Errorf("chunk %v deactivated %d times", index, n)
		}
	}
	if s.Pending() != 21 {
		t.Fatalf("pending %d, want 21", s.Pending())
	}
	s.Run(context.Background(), nil)

	st := m.Stats()
	if st.Live != 441 || st.Free != 0 || st.Slots != 441 {
		t.Errorf("pool stats %+v", st)
	}
	if !s.IsActive(world.Index{X: 11}) || s.IsActive(world.Index{X: -10}) {
		t.Error("window did not move")
	}
}

func TestStreamerSingleRebuildInFlight(t *testing.T) {
	_, s := newTestStreamer(2, nil)
	s.Update(mgl32.Vec3{})

	if s.Update(mgl32.Vec3{100, 0, 100}) {
		t.Fatal("second rebuild started while busy")
	}
	before := s.Pending()
	if !s.Step() {
		t.Fatal("step generated nothing")
	}
	if s.Pending() != before-1 {
		t.Errorf("pending %d, want %d", s.Pending(), before-1)
	}
	if s.ActiveCount() != 0 {
		t.Error("window committed before the rebuild finished")
	}
	s.Run(context.Background(), nil)
	if s.Busy() || s.ActiveCount() != 25 {
		t.Errorf("busy %v active %d", s.Busy(), s.ActiveCount())
	}
}

func TestStreamerBuildsNearestFirst(t *testing.T) {
	sink := newRecordingSink()
	_, s := newTestStreamer(3, sink)
	s.Update(mgl32.Vec3{20, 0, -20}) // chunk (2, 0, -3)
	s.Run(context.Background(), nil)

	if sink.built[0] != (world.Index{X: 2, Y: 0, Z: -3}) {
		t.Errorf("first built %v, want viewpoint chunk", sink.built[0])
	}
	dist := func(i world.Index) int {
		dx, dz := i.X-2, i.Z+3
		return dx*dx + dz*dz
	}
	for i := 1; i < len(sink.built); i++ {
		if dist(sink.built[i]) < dist(sink.built[i-1]) {
			t.Fatalf("chunk %v built after farther chunk %v", sink.built[i], sink.built[i-1])
		}
	}
}

func TestStreamerClampsHeight(t *testing.T) {
	_, s := newTestStreamer(1, nil)
	for _, index := range s.Desired(world.Index{X: 0, Y: 3, Z: 0}) {
		if index.Y != 0 {
			t.Fatalf("desired chunk %v above max height", index)
		}
	}
	for _, index := range s.Desired(world.Index{X: 0, Y: -2, Z: 0}) {
		if index.Y != -2 {
			t.Fatalf("desired chunk %v, want y=-2", index)
		}
	}
}

func TestStreamerRunHonorsContext(t *testing.T) {
	_, s := newTestStreamer(1, nil)
	s.Update(mgl32.Vec3{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, nil); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if err := s.Run(context.Background(), rate.NewLimiter(rate.Inf, 1)); err != nil {
		t.Fatal(err)
	}
	if s.Busy() {
		t.Error("rebuild not drained")
	}
}
