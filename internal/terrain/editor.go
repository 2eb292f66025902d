package terrain

import (
	"math/rand"

	"mini-terrain/internal/config"
	"mini-terrain/internal/meshing"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Raycast offsets in block sizes: into the hit block for removal, back into
// the empty block in front of it for placement.
const (
	removeOffset = 0.01
	addOffset    = -0.01
)

const (
	minImpulse = 10
	maxImpulse = 20
)

// Dislodged is a block knocked out of the terrain, ready for a rigid body.
type Dislodged struct {
	Type    world.BlockType
	Center  mgl32.Vec3
	Mesh    *meshing.Mesh
	Impulse mgl32.Vec3
}

// Editor mutates terrain blocks and keeps the halos of neighboring chunks in
// step with every change.
type Editor struct {
	cfg config.Config
	mgr *Manager
	rng *rand.Rand
}

// NewEditor creates an editor. rng drives dislodge impulses; nil seeds one
// from the world seed.
func NewEditor(cfg config.Config, mgr *Manager, rng *rand.Rand) *Editor {
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.WorldGen.Seed))
	}
	return &Editor{cfg: cfg, mgr: mgr, rng: rng}
}

func (e *Editor) raycast(ray physics.Ray, offset float32) (physics.SurfaceHit, bool) {
	return physics.RaycastSurface(e.mgr, e.cfg.BlockSize, ray, e.cfg.ReachDistance, offset)
}

// RemoveBlock empties the block the ray hits and returns its former type.
// A miss or an empty target changes nothing.
func (e *Editor) RemoveBlock(ray physics.Ray) (world.BlockType, bool) {
	hit, ok := e.raycast(ray, removeOffset)
	if !ok {
		return world.BlockNone, false
	}
	if b, ok := e.BlockAt(hit.Point); !ok || b.IsEmpty() {
		return world.BlockNone, false
	}
	prev, _ := e.SetBlockAt(hit.Point, world.BlockNone)
	return prev.Type, true
}

// AddBlock places a block of type t in front of the surface the ray hits
// and returns it.
func (e *Editor) AddBlock(ray physics.Ray, t world.BlockType) (world.Block, bool) {
	if t == world.BlockNone {
		return world.Block{}, false
	}
	hit, ok := e.raycast(ray, addOffset)
	if !ok {
		return world.Block{}, false
	}
	_, placed := e.SetBlockAt(hit.Point, t)
	return placed, true
}

// Dislodge removes the block the ray hits like RemoveBlock and returns it as
// a loose body. With addForce the body gets an impulse away from its solid
// neighbors.
func (e *Editor) Dislodge(ray physics.Ray, addForce bool) (Dislodged, bool) {
	hit, ok := e.raycast(ray, removeOffset)
	if !ok {
		return Dislodged{}, false
	}
	b, ok := e.BlockAt(hit.Point)
	if !ok || b.IsEmpty() {
		return Dislodged{}, false
	}
	e.SetBlockAt(hit.Point, world.BlockNone)

	d := Dislodged{
		Type:   b.Type,
		Center: b.Center(),
		Mesh:   e.mgr.Mesher().BuildBlockMesh(b.Type),
	}
	if addForce {
		d.Impulse = e.impulse(b.Global)
	}
	return d, true
}

// isEmpty reports whether g is resident and empty. Unknown blocks count as
// occupied.
func (e *Editor) isEmpty(g world.Index) bool {
	b, ok := e.mgr.BlockAt(g)
	return ok && b.IsEmpty()
}

func (e *Editor) impulse(g world.Index) mgl32.Vec3 {
	if e.isEmpty(g.StepDown()) {
		return mgl32.Vec3{}
	}
	magnitude := minImpulse + e.rng.Float32()*(maxImpulse-minImpulse)
	if e.isEmpty(g.StepUp()) {
		return mgl32.Vec3{0, magnitude, 0}
	}

	var dir mgl32.Vec3
	if e.isEmpty(g.StepLeft()) {
		dir = dir.Add(world.Left.Vec3())
	} else if e.isEmpty(g.StepRight()) {
		dir = dir.Add(world.Right.Vec3())
	}
	if e.isEmpty(g.StepBack()) {
		dir = dir.Add(world.Back.Vec3())
	} else if e.isEmpty(g.StepForward()) {
		dir = dir.Add(world.Forward.Vec3())
	}
	if dir.Dot(dir) >= 0.01 {
		dir = dir.Normalize()
	}
	return dir.Mul(magnitude)
}

// BlockAt returns the block containing point from the chunk that owns it.
// It never creates chunks.
func (e *Editor) BlockAt(point mgl32.Vec3) (world.Block, bool) {
	g := world.BlockIndexAt(e.cfg, point)
	c, ok := e.mgr.Chunk(world.ChunkIndexForBlock(e.cfg, g))
	if !ok {
		return world.Block{}, false
	}
	return c.Block(c.LocalIndexAt(point)), true
}

// SetBlockAt overwrites the block containing point with type t in its owning
// chunk, creating a placeholder owner when none is resident, and mirrors the
// change into every neighbor that holds the block in its halo. It returns
// the previous and the new block.
func (e *Editor) SetBlockAt(point mgl32.Vec3, t world.BlockType) (prev, placed world.Block) {
	defer profiling.Track("terrain.Editor.SetBlockAt")()

	g := world.BlockIndexAt(e.cfg, point)
	c := e.mgr.GetOrGenerateEmpty(world.ChunkIndexForBlock(e.cfg, g))
	local := c.LocalIndexOf(g)

	prev = e.set(c, local, t)
	placed = c.Block(local)

	for _, d := range e.PropagationDirections(c, local) {
		n := e.mgr.GetOrGenerateEmpty(c.Index().Step(d))
		nl := n.LocalIndexOf(g)
		if n.InBounds(nl) {
			e.set(n, nl, t)
		}
	}
	return prev, placed
}

func (e *Editor) set(c *world.Chunk, local world.Index, t world.BlockType) world.Block {
	prev := c.Block(local)
	c.SetBlockType(local, t)
	e.mgr.BuildMeshFor(c)
	return prev
}

// PropagationDirections lists the chunk offsets whose halo holds the block at
// local: one per chunk face the block touches, plus every combination of
// those faces for edge and corner neighbors. With LegacyHaloPropagation the
// corner neighbor of a block touching three faces is left out.
func (e *Editor) PropagationDirections(c *world.Chunk, local world.Index) []world.Index {
	min, max := c.MinBlockIndex(), c.MaxBlockIndex()

	var faces []world.Index
	axis := func(v, lo, hi int, down, up world.Index) {
		if v <= lo {
			faces = append(faces, down)
		} else if v >= hi {
			faces = append(faces, up)
		}
	}
	axis(local.X, min.X, max.X, world.Left, world.Right)
	axis(local.Y, min.Y, max.Y, world.Down, world.Up)
	axis(local.Z, min.Z, max.Z, world.Back, world.Forward)

	dirs := append([]world.Index(nil), faces...)
	for i := range faces {
		for j := i + 1; j < len(faces); j++ {
			dirs = append(dirs, faces[i].Step(faces[j]))
		}
	}
	if len(faces) == 3 && !e.cfg.LegacyHaloPropagation {
		dirs = append(dirs, faces[0].Step(faces[1]).Step(faces[2]))
	}
	return dirs
}
