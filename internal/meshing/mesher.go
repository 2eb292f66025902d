package meshing

import (
	"mini-terrain/internal/config"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// face describes one side of a unit cube: the neighbor it faces, its corners
// as offsets from the block's minimum corner, and which tile it shows.
type face struct {
	dir      world.Index
	corners  [4]mgl32.Vec3
	category FaceCategory
}

var faces = [6]face{
	{world.Up, [4]mgl32.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}, FaceTop},
	{world.Down, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, FaceBottom},
	{world.Forward, [4]mgl32.Vec3{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}, FaceSide},
	{world.Right, [4]mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}, FaceSide},
	{world.Back, [4]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}, FaceSide},
	{world.Left, [4]mgl32.Vec3{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}, FaceSide},
}

// Mesher turns chunks into face-culled meshes.
type Mesher struct {
	cfg config.Config
	uvs UVFunc
}

// NewMesher creates a mesher. A nil uvs uses AtlasUVs.
func NewMesher(cfg config.Config, uvs UVFunc) *Mesher {
	if uvs == nil {
		uvs = AtlasUVs
	}
	return &Mesher{cfg: cfg, uvs: uvs}
}

func (m *Mesher) addFace(mesh *Mesh, f face, min mgl32.Vec3, t world.BlockType) {
	var corners [4]mgl32.Vec3
	for i, c := range f.corners {
		corners[i] = min.Add(c.Mul(m.cfg.BlockSize))
	}
	mesh.addQuad(corners, m.uvs(t, f.category))
}

// BuildChunkMesh emits a quad for every face of a non-empty interior block
// whose neighbor is empty. Neighbors on the border are read from the halo.
// Positions are relative to the chunk's anchor.
func (m *Mesher) BuildChunkMesh(c *world.Chunk) *Mesh {
	defer profiling.Track("meshing.BuildChunkMesh")()

	mesh := &Mesh{}
	half := m.cfg.HalfBlockSize()
	c.ForEachNonEmptyInteriorBlock(func(b world.Block) {
		min := b.Local.Vec3().Mul(m.cfg.BlockSize).Sub(mgl32.Vec3{half, half, half})
		for _, f := range faces {
			if c.IsBlockEmpty(b.Local.Step(f.dir)) {
				m.addFace(mesh, f, min, b.Type)
			}
		}
	})
	mesh.RecalculateNormals()
	return mesh
}

// BuildBlockMesh builds a lone cube of type t centered on the origin.
func (m *Mesher) BuildBlockMesh(t world.BlockType) *Mesh {
	mesh := &Mesh{}
	half := m.cfg.HalfBlockSize()
	min := mgl32.Vec3{-half, -half, -half}
	for _, f := range faces {
		m.addFace(mesh, f, min, t)
	}
	mesh.RecalculateNormals()
	return mesh
}
