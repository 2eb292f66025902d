package terrain

import (
	"log"

	"mini-terrain/internal/config"
	"mini-terrain/internal/meshing"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"
)

// Stats is a snapshot of chunk bookkeeping.
type Stats struct {
	Live         int // registered chunks, placeholders included
	Free         int // chunks waiting for reuse
	Slots        int // chunk instances ever allocated
	Generated    int // full generations
	Placeholders int // empty chunks created to hold halo edits
	MeshBuilds   int
	Trees        int
}

// Manager builds chunks: pool instantiation, generation and meshing.
// Not safe for concurrent use.
type Manager struct {
	cfg    config.Config
	pool   *world.Pool
	gen    *world.Generator
	mesher *meshing.Mesher
	sink   MeshSink
	logger *log.Logger

	meshes map[world.Index]ChunkMeshes
	stats  Stats
}

// NewManager creates a manager over noise. A nil sink discards meshes and
// a nil logger logs to the standard logger.
func NewManager(cfg config.Config, noise world.NoiseField, sink MeshSink, logger *log.Logger) *Manager {
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		cfg:    cfg,
		pool:   world.NewPool(),
		gen:    world.NewGenerator(cfg, noise),
		mesher: meshing.NewMesher(cfg, nil),
		sink:   sink,
		logger: logger,
		meshes: make(map[world.Index]ChunkMeshes),
	}
}

func (m *Manager) instantiate(index world.Index) *world.Chunk {
	_, c := m.pool.Instantiate(index)
	c.Setup(index, m.cfg)
	return c
}

// Generate builds the chunk at index from scratch, replacing whatever was
// registered there, and meshes it.
func (m *Manager) Generate(index world.Index) *world.Chunk {
	defer profiling.Track("terrain.Manager.Generate")()

	c := m.instantiate(index)
	trees := m.gen.Populate(c)
	m.stats.Generated++
	m.stats.Trees += len(trees)
	m.BuildMeshFor(c)
	return c
}

// GetOrGenerateEmpty returns the resident chunk at index, or registers an
// empty, unmeshed placeholder there.
func (m *Manager) GetOrGenerateEmpty(index world.Index) *world.Chunk {
	if c, ok := m.pool.Get(index); ok {
		return c
	}
	c := m.instantiate(index)
	m.gen.PopulateEmpty(c)
	m.stats.Placeholders++
	m.logger.Printf("terrain: placeholder chunk %v", index)
	return c
}

// BuildMeshFor rebuilds the chunk's meshes and hands them to the sink.
// Only generated chunks on the ground layer get water.
func (m *Manager) BuildMeshFor(c *world.Chunk) ChunkMeshes {
	meshes := ChunkMeshes{
		Index:   c.Index(),
		Anchor:  c.Anchor(),
		Terrain: m.mesher.BuildChunkMesh(c),
	}
	if c.Index().Y == 0 && c.Generated() {
		meshes.Water = m.mesher.BuildWaterMesh(c)
	}
	m.meshes[c.Index()] = meshes
	m.stats.MeshBuilds++
	m.sink.ChunkMeshBuilt(meshes)
	return meshes
}

// Deactivate returns the chunks at indices to the pool and drops their
// meshes. Indices without a resident chunk are ignored.
func (m *Manager) Deactivate(indices ...world.Index) int {
	n := 0
	for _, index := range indices {
		if m.pool.Deactivate(index) == 0 {
			continue
		}
		delete(m.meshes, index)
		m.sink.ChunkDeactivated(index)
		n++
	}
	return n
}

// Chunk returns the resident chunk at index.
func (m *Manager) Chunk(index world.Index) (*world.Chunk, bool) {
	return m.pool.Get(index)
}

// Meshes returns the last meshes built for the chunk at index.
func (m *Manager) Meshes(index world.Index) (ChunkMeshes, bool) {
	meshes, ok := m.meshes[index]
	return meshes, ok
}

// BlockAt returns global block g from the chunk that owns it. It never
// creates chunks.
func (m *Manager) BlockAt(g world.Index) (world.Block, bool) {
	c, ok := m.pool.Get(world.ChunkIndexForBlock(m.cfg, g))
	if !ok {
		return world.Block{}, false
	}
	return c.Block(c.LocalIndexOf(g)), true
}

// IsSolid reports whether g is resident and not empty.
func (m *Manager) IsSolid(g world.Index) bool {
	b, ok := m.BlockAt(g)
	return ok && !b.IsEmpty()
}

// Mesher is the mesher chunk meshes are built with.
func (m *Manager) Mesher() *meshing.Mesher { return m.mesher }

func (m *Manager) Stats() Stats {
	s := m.stats
	s.Live = m.pool.Live()
	s.Free = m.pool.Free()
	s.Slots = m.pool.Slots()
	return s
}
