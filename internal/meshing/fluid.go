package meshing

import (
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

var waterUVs = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// WaterLevelY is the height of the water plane relative to a chunk's anchor.
// It sits slightly below the top of the highest submerged block.
func (m *Mesher) WaterLevelY() float32 {
	return float32(m.cfg.WorldGen.WaterLevel)*m.cfg.BlockSize - m.cfg.HalfBlockSize()*1.3
}

// BuildWaterMesh emits one flat quad per interior column whose ground block
// lies below the water level. It returns nil when no column is submerged.
func (m *Mesher) BuildWaterMesh(c *world.Chunk) *Mesh {
	defer profiling.Track("meshing.BuildWaterMesh")()

	bs := m.cfg.BlockSize
	half := m.cfg.HalfBlockSize()
	y := m.WaterLevelY()

	mesh := &Mesh{}
	c.ForEachGroundBlock(func(b world.Block) {
		if b.Local.Y >= m.cfg.WorldGen.WaterLevel {
			return
		}
		x := float32(b.Local.X)*bs - half
		z := float32(b.Local.Z)*bs - half
		mesh.addQuad([4]mgl32.Vec3{
			{x, y, z},
			{x, y, z + bs},
			{x + bs, y, z + bs},
			{x + bs, y, z},
		}, waterUVs)
	})
	if len(mesh.Vertices) == 0 {
		return nil
	}
	mesh.RecalculateNormals()
	return mesh
}
