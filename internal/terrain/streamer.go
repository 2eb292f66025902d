package terrain

import (
	"cmp"
	"context"
	"slices"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/time/rate"
)

const slowRebuild = 2 * time.Second

// Streamer keeps the chunks around a moving viewpoint resident. A rebuild
// deactivates stale chunks at once and then generates new ones one Step at
// a time. Only one rebuild is in flight.
type Streamer struct {
	cfg config.Config
	mgr *Manager

	active    map[world.Index]struct{}
	viewpoint world.Index // chunk of the last committed rebuild
	busy      bool

	// In-flight rebuild.
	target      world.Index
	desired     []world.Index
	queue       []world.Index
	started     time.Time
	created     int
	deactivated int
}

func NewStreamer(cfg config.Config, mgr *Manager) *Streamer {
	return &Streamer{
		cfg:       cfg,
		mgr:       mgr,
		active:    make(map[world.Index]struct{}),
		viewpoint: world.InvalidIndex,
	}
}

// Desired returns the chunk window around viewpoint chunk vc: the full
// radius on X and Z, a single layer on Y no higher than StreamMaxHeight.
func (s *Streamer) Desired(vc world.Index) []world.Index {
	r := s.cfg.StreamRadius
	around := vc.IndicesAround(world.Index{X: r, Y: 0, Z: r})
	for i := range around {
		around[i].Y = min(around[i].Y, s.cfg.StreamMaxHeight)
	}
	return around
}

// Update starts a rebuild when the viewpoint has moved into another chunk.
// It does nothing while a rebuild is in flight. It reports whether a
// rebuild was started.
func (s *Streamer) Update(viewpoint mgl32.Vec3) bool {
	if s.busy {
		return false
	}
	vc := world.ChunkIndexAt(s.cfg, viewpoint)
	if vc == s.viewpoint {
		return false
	}

	desired := s.Desired(vc)
	want := make(map[world.Index]struct{}, len(desired))
	for _, index := range desired {
		want[index] = struct{}{}
	}

	var stale []world.Index
	for index := range s.active {
		if _, ok := want[index]; !ok {
			stale = append(stale, index)
		}
	}
	var create []world.Index
	for _, index := range desired {
		if _, ok := s.active[index]; !ok {
			create = append(create, index)
		}
	}
	sortNearest(create, vc)

	s.deactivated = s.mgr.Deactivate(stale...)
	s.busy = true
	s.target = vc
	s.desired = desired
	s.queue = create
	s.created = 0
	s.started = time.Now()
	return true
}

// sortNearest orders indices by horizontal distance to center, then by X
// and Z so the order is stable across runs.
func sortNearest(indices []world.Index, center world.Index) {
	dist := func(i world.Index) int {
		dx, dz := i.X-center.X, i.Z-center.Z
		return dx*dx + dz*dz
	}
	slices.SortFunc(indices, func(a, b world.Index) int {
		if c := cmp.Compare(dist(a), dist(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})
}

// Step generates the next queued chunk and commits the rebuild once the
// queue is empty. It reports whether a chunk was generated.
func (s *Streamer) Step() bool {
	if !s.busy {
		return false
	}
	defer profiling.Track("terrain.Streamer.Step")()

	generated := false
	if len(s.queue) > 0 {
		index := s.queue[0]
		s.queue = s.queue[1:]
		s.mgr.Generate(index)
		s.created++
		generated = true
	}
	if len(s.queue) == 0 {
		s.commit()
	}
	return generated
}

func (s *Streamer) commit() {
	clear(s.active)
	for _, index := range s.desired {
		s.active[index] = struct{}{}
	}
	s.viewpoint = s.target
	s.busy = false
	s.desired = nil

	elapsed := time.Since(s.started)
	s.mgr.logger.Printf("terrain: rebuilt around %v: %d created, %d deactivated in %s",
		s.viewpoint, s.created, s.deactivated, elapsed.Round(time.Millisecond))
	if elapsed > slowRebuild {
		s.mgr.logger.Printf("terrain: slow rebuild, top: %v", profiling.TopN(5))
	}
}

// Run drains the in-flight rebuild, waiting on limiter between chunks when
// it is non-nil.
func (s *Streamer) Run(ctx context.Context, limiter *rate.Limiter) error {
	for s.busy {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
	}
	return nil
}

func (s *Streamer) Busy() bool { return s.busy }

// Viewpoint is the chunk of the last committed rebuild, or
// world.InvalidIndex before the first one.
func (s *Streamer) Viewpoint() world.Index { return s.viewpoint }

// Pending is the number of chunks the in-flight rebuild still has to build.
func (s *Streamer) Pending() int { return len(s.queue) }

// IsActive reports whether index belongs to the committed window.
func (s *Streamer) IsActive(index world.Index) bool {
	_, ok := s.active[index]
	return ok
}

// ActiveCount is the size of the committed window.
func (s *Streamer) ActiveCount() int { return len(s.active) }
