package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"sync/atomic"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/game"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/terrain"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

const eyeHeight = 1.6

// meshCounter stands in for a render backend.
type meshCounter struct {
	built       atomic.Int64
	vertices    atomic.Int64
	deactivated atomic.Int64
}

func (m *meshCounter) ChunkMeshBuilt(cm terrain.ChunkMeshes) {
	m.built.Add(1)
	m.vertices.Add(int64(len(cm.Terrain.Vertices)))
	if cm.Water != nil {
		m.vertices.Add(int64(len(cm.Water.Vertices)))
	}
}

func (m *meshCounter) ChunkDeactivated(world.Index) { m.deactivated.Add(1) }

func main() {
	configPath := flag.String("config", "", "YAML config file; built-in defaults when empty")
	ticks := flag.Int("ticks", 1200, "number of ticks to simulate")
	fps := flag.Int("fps", 60, "ticks per second")
	speed := flag.Float64("speed", 12, "viewpoint speed along +X in world units per second")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("mini-terrain: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sink := &meshCounter{}
	session := game.NewSession(cfg, game.WithMeshSink(sink))
	closer.Bind(func() {
		cancel()
		session.Close()
		log.Printf("mini-terrain: %d meshes built, %d vertices, %d chunks deactivated",
			sink.built.Load(), sink.vertices.Load(), sink.deactivated.Load())
	})

	go func() {
		err := walk(ctx, session, cfg, *ticks, *fps, float32(*speed))
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, game.ErrClosed) {
			log.Printf("mini-terrain: %v", err)
		}
		closer.Close()
	}()
	closer.Hold()
}

// walk moves a viewpoint across the terrain, streaming chunks as it goes
// and editing the ground in front of it every couple of seconds.
func walk(ctx context.Context, s *game.Session, cfg config.Config, ticks, fps int, speed float32) error {
	start := time.Now()
	if _, err := s.Tick(ctx, mgl32.Vec3{}); err != nil {
		return err
	}
	if err := s.WaitIdle(ctx); err != nil {
		return err
	}
	log.Printf("mini-terrain: initial window ready in %s", time.Since(start).Round(time.Millisecond))

	limiter := game.NewFPSLimiter(fps)
	dt := float32(1) / float32(max(fps, 1))
	pos := mgl32.Vec3{0.5, 0, 0.5}

	for tick := 0; tick < ticks; tick++ {
		limiter.Wait()
		profiling.ResetFrame()

		pos[0] += speed * dt
		if y, ok, err := s.GroundLevel(ctx, pos.X(), pos.Z()); err != nil {
			return err
		} else if ok {
			pos[1] = y + eyeHeight
		}
		if _, err := s.Tick(ctx, pos); err != nil {
			return err
		}

		if fps > 0 && tick%(2*fps) == 0 {
			if err := edit(ctx, s, pos); err != nil {
				return err
			}
		}
		if fps > 0 && tick%fps == 0 {
			st, err := s.Stats(ctx)
			if err != nil {
				return err
			}
			log.Printf("mini-terrain: tick %d at %v: active=%d pending=%d live=%d free=%d trees=%d",
				tick, world.ChunkIndexAt(cfg, pos), st.Active, st.Pending, st.Live, st.Free, st.Trees)
		}
	}
	return nil
}

// edit digs the block in front of the viewpoint, puts it back as stone and
// knocks the next one loose.
func edit(ctx context.Context, s *game.Session, eye mgl32.Vec3) error {
	ray := physics.Ray{Origin: eye, Direction: mgl32.Vec3{1, -1, 0}}

	removed, ok, err := s.RemoveBlock(ctx, ray)
	if err != nil {
		return err
	}
	if ok {
		log.Printf("mini-terrain: removed %v", removed)
	}
	if placed, ok, err := s.AddBlock(ctx, ray, world.BlockStone); err != nil {
		return err
	} else if ok {
		log.Printf("mini-terrain: placed %v at %v", placed.Type, placed.Global)
	}
	d, ok, err := s.Dislodge(ctx, ray, true)
	if err != nil {
		return err
	}
	if ok {
		log.Printf("mini-terrain: dislodged %v at %v, impulse %v", d.Type, d.Center, d.Impulse)
	}
	return nil
}
