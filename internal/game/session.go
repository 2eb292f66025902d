package game

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"mini-terrain/internal/config"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/terrain"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrClosed is returned by calls on a closed session.
var ErrClosed = errors.New("game: session closed")

// Stats is a snapshot of a session's terrain.
type Stats struct {
	terrain.Stats
	Active    int
	Pending   int
	Busy      bool
	Viewpoint world.Index
}

type options struct {
	logger *log.Logger
	sink   terrain.MeshSink
	noise  world.NoiseField
	rng    *rand.Rand
}

// Option configures a Session.
type Option func(*options)

func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithMeshSink delivers chunk meshes to sink. The sink is called from the
// session goroutine.
func WithMeshSink(sink terrain.MeshSink) Option { return func(o *options) { o.sink = sink } }

// WithNoise replaces the seeded noise field.
func WithNoise(n world.NoiseField) Option { return func(o *options) { o.noise = n } }

// WithRand sets the source of dislodge impulses.
func WithRand(r *rand.Rand) Option { return func(o *options) { o.rng = r } }

// Session owns a terrain and serializes every access to it on one goroutine.
// Streaming advances one chunk at a time between commands, so edits never
// run while a chunk is being generated.
type Session struct {
	ID     uuid.UUID
	cfg    config.Config
	logger *log.Logger

	mgr      *terrain.Manager
	streamer *terrain.Streamer
	editor   *terrain.Editor
	limiter  *rate.Limiter

	cmds      chan func()
	closing   chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Owned by the session goroutine.
	stepAt    <-chan time.Time
	idleWaits []chan struct{}
}

// NewSession starts a session over cfg.
func NewSession(cfg config.Config, opts ...Option) *Session {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.noise == nil {
		o.noise = world.NewNoiseField(cfg.WorldGen.Seed)
	}

	mgr := terrain.NewManager(cfg, o.noise, o.sink, o.logger)
	s := &Session{
		ID:       uuid.New(),
		cfg:      cfg,
		logger:   o.logger,
		mgr:      mgr,
		streamer: terrain.NewStreamer(cfg, mgr),
		editor:   terrain.NewEditor(cfg, mgr, o.rng),
		cmds:     make(chan func()),
		closing:  make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	if cfg.ChunkBuildsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.ChunkBuildsPerSecond), 1)
	}

	s.logger.Printf("game: session %s started (seed %d, radius %d)", s.ID, cfg.WorldGen.Seed, cfg.StreamRadius)
	go s.run()
	return s
}

var ready = func() <-chan time.Time {
	c := make(chan time.Time)
	close(c)
	return c
}()

// nextStep arms the timer for the next streaming step.
func (s *Session) nextStep() <-chan time.Time {
	if s.limiter == nil {
		return ready
	}
	d := s.limiter.Reserve().Delay()
	if d <= 0 {
		return ready
	}
	return time.After(d)
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		var step <-chan time.Time
		if s.streamer.Busy() {
			if s.stepAt == nil {
				s.stepAt = s.nextStep()
			}
			step = s.stepAt
		}

		select {
		case fn := <-s.cmds:
			fn()
		case <-step:
			s.stepAt = nil
			s.streamer.Step()
		case <-s.closing:
			return
		}
		if !s.streamer.Busy() {
			s.releaseIdle()
		}
	}
}

func (s *Session) releaseIdle() {
	for _, c := range s.idleWaits {
		close(c)
	}
	s.idleWaits = nil
}

// do runs fn on the session goroutine and waits for it.
func (s *Session) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
	case <-s.closing:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// Accepted commands run to completion; only a shutdown abandons them.
	select {
	case <-done:
		return nil
	case <-s.stopped:
		return ErrClosed
	}
}

// Tick reports the viewpoint's position. It starts a streaming rebuild when
// the viewpoint entered another chunk and no rebuild is in flight.
func (s *Session) Tick(ctx context.Context, viewpoint mgl32.Vec3) (started bool, err error) {
	err = s.do(ctx, func() { started = s.streamer.Update(viewpoint) })
	return started, err
}

// WaitIdle blocks until no rebuild is in flight.
func (s *Session) WaitIdle(ctx context.Context) error {
	var wait chan struct{}
	err := s.do(ctx, func() {
		wait = make(chan struct{})
		if !s.streamer.Busy() {
			close(wait)
			return
		}
		s.idleWaits = append(s.idleWaits, wait)
	})
	if err != nil {
		return err
	}
	select {
	case <-wait:
		return nil
	case <-s.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RemoveBlock empties the block the ray hits. ok is false on a miss.
func (s *Session) RemoveBlock(ctx context.Context, ray physics.Ray) (removed world.BlockType, ok bool, err error) {
	err = s.do(ctx, func() { removed, ok = s.editor.RemoveBlock(ray) })
	return removed, ok, err
}

// AddBlock places a block of type t against the surface the ray hits.
func (s *Session) AddBlock(ctx context.Context, ray physics.Ray, t world.BlockType) (placed world.Block, ok bool, err error) {
	err = s.do(ctx, func() { placed, ok = s.editor.AddBlock(ray, t) })
	return placed, ok, err
}

// Dislodge knocks the block the ray hits loose.
func (s *Session) Dislodge(ctx context.Context, ray physics.Ray, addForce bool) (d terrain.Dislodged, ok bool, err error) {
	err = s.do(ctx, func() { d, ok = s.editor.Dislodge(ray, addForce) })
	return d, ok, err
}

// BlockAt returns the resident block containing point.
func (s *Session) BlockAt(ctx context.Context, point mgl32.Vec3) (b world.Block, ok bool, err error) {
	err = s.do(ctx, func() { b, ok = s.editor.BlockAt(point) })
	return b, ok, err
}

// GroundLevel returns the height of the top solid block under (x, z).
func (s *Session) GroundLevel(ctx context.Context, x, z float32) (y float32, ok bool, err error) {
	h := s.cfg.ChunkSize[1]
	top := (s.cfg.StreamMaxHeight + 1) * h
	bottom := top - 2*h
	err = s.do(ctx, func() {
		y, ok = physics.GroundLevel(s.mgr, s.cfg.BlockSize, x, z, top, bottom)
	})
	return y, ok, err
}

func (s *Session) Stats(ctx context.Context) (st Stats, err error) {
	err = s.do(ctx, func() {
		st = Stats{
			Stats:     s.mgr.Stats(),
			Active:    s.streamer.ActiveCount(),
			Pending:   s.streamer.Pending(),
			Busy:      s.streamer.Busy(),
			Viewpoint: s.streamer.Viewpoint(),
		}
	})
	return st, err
}

// Close stops the session goroutine. Pending rebuild steps are dropped.
func (s *Session) Close() error {
	err := ErrClosed
	s.closeOnce.Do(func() {
		close(s.closing)
		<-s.stopped
		s.logger.Printf("game: session %s closed", s.ID)
		err = nil
	})
	return err
}
