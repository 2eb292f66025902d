package terrain

import (
	"mini-terrain/internal/meshing"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkMeshes is what the render and physics backends receive for a chunk.
type ChunkMeshes struct {
	Index world.Index
	// Anchor is the world-space position every mesh vertex is relative to.
	Anchor  mgl32.Vec3
	Terrain *meshing.Mesh
	// Water is nil for chunks off the ground layer or with nothing submerged.
	Water *meshing.Mesh
}

// MeshSink consumes mesh updates. Calls arrive on the goroutine that owns
// the terrain and must not block.
type MeshSink interface {
	ChunkMeshBuilt(ChunkMeshes)
	ChunkDeactivated(world.Index)
}

type nopSink struct{}

func (nopSink) ChunkMeshBuilt(ChunkMeshes)   {}
func (nopSink) ChunkDeactivated(world.Index) {}
