package world

import (
	"math"

	"mini-terrain/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk is a fixed-size cuboid of blocks plus a one-block halo on every face.
// The halo duplicates the border blocks of the neighboring chunks so face
// visibility can be answered without looking at other chunks.
type Chunk struct {
	index     Index
	size      Index // interior size in blocks
	dims      Index // padded size (size + 2)
	first     Index // global index of padded local index (1,1,1) minus one
	blockSize float32
	blocks    []Block
	generated bool
}

// NewChunk returns an unassigned chunk. Call Setup before use.
func NewChunk() *Chunk {
	return &Chunk{index: InvalidIndex}
}

// Setup assigns the chunk to index and reallocates its blocks.
// Nothing from a previous assignment survives.
func (c *Chunk) Setup(index Index, cfg config.Config) {
	c.index = index
	c.size = Index{cfg.ChunkSize[0], cfg.ChunkSize[1], cfg.ChunkSize[2]}
	c.dims = Index{c.size.X + 2, c.size.Y + 2, c.size.Z + 2}
	c.blockSize = cfg.BlockSize
	c.blocks = make([]Block, c.dims.X*c.dims.Y*c.dims.Z)
	c.generated = false

	c.first = Index{
		index.X*c.size.X - 1,
		index.Y*c.size.Y - 1,
		index.Z*c.size.Z - 1,
	}
}

func (c *Chunk) Index() Index       { return c.index }
func (c *Chunk) Size() Index        { return c.size }
func (c *Chunk) BlockSize() float32 { return c.blockSize }

// Generated reports whether the chunk ran the full terrain pipeline,
// as opposed to being an empty placeholder.
func (c *Chunk) Generated() bool { return c.generated }

// MinBlockIndex is the first interior local index.
func (c *Chunk) MinBlockIndex() Index {
	return Index{1, 1, 1}
}

// MaxBlockIndex is the last interior local index.
func (c *Chunk) MaxBlockIndex() Index {
	return c.size
}

// FirstVisibleBlockGlobalIndex anchors the chunk's mesh in world space.
func (c *Chunk) FirstVisibleBlockGlobalIndex() Index {
	return Index{c.first.X + 1, c.first.Y + 1, c.first.Z + 1}
}

// Anchor is the world-space origin of the chunk's mesh.
func (c *Chunk) Anchor() mgl32.Vec3 {
	return c.FirstVisibleBlockGlobalIndex().Vec3().Mul(c.blockSize)
}

// ToGlobalIndex translates a padded local index to the world block grid.
func (c *Chunk) ToGlobalIndex(local Index) Index {
	return Index{
		local.X + c.first.X + 1,
		local.Y + c.first.Y + 1,
		local.Z + c.first.Z + 1,
	}
}

// LocalIndexAt is the inverse mapping: the padded local index of the block
// containing pointInWorld. The result may be outside the padded array.
func (c *Chunk) LocalIndexAt(pointInWorld mgl32.Vec3) Index {
	half := c.blockSize / 2
	min := c.first.Vec3().Mul(c.blockSize).Sub(mgl32.Vec3{half, half, half})
	p := pointInWorld.Sub(min)
	return Index{
		floorToInt(p.X()/c.blockSize) - 1,
		floorToInt(p.Y()/c.blockSize) - 1,
		floorToInt(p.Z()/c.blockSize) - 1,
	}
}

func floorToInt(f float32) int {
	return int(math.Floor(float64(f)))
}

func (c *Chunk) offset(local Index) int {
	return (local.X*c.dims.Y+local.Y)*c.dims.Z + local.Z
}

// InBounds reports whether local addresses the padded array (halo included).
func (c *Chunk) InBounds(local Index) bool {
	return local.X >= 0 && local.X < c.dims.X &&
		local.Y >= 0 && local.Y < c.dims.Y &&
		local.Z >= 0 && local.Z < c.dims.Z
}

// InInterior reports whether local addresses a rendered (non-halo) block.
func (c *Chunk) InInterior(local Index) bool {
	max := c.MaxBlockIndex()
	return local.X >= 1 && local.X <= max.X &&
		local.Y >= 1 && local.Y <= max.Y &&
		local.Z >= 1 && local.Z <= max.Z
}

// Block returns the block at a padded local index.
func (c *Chunk) Block(local Index) Block {
	return c.blocks[c.offset(local)]
}

// SetBlock stores b at a padded local index.
func (c *Chunk) SetBlock(local Index, b Block) {
	c.blocks[c.offset(local)] = b
}

// SetBlockType replaces the block at local with a new block of type t.
func (c *Chunk) SetBlockType(local Index, t BlockType) {
	c.SetBlock(local, Block{
		Type:   t,
		Local:  local,
		Global: c.ToGlobalIndex(local),
		Size:   c.blockSize,
	})
}

func (c *Chunk) IsBlockEmpty(local Index) bool {
	return c.Block(local).IsEmpty()
}

// GroundHeightAt scans down from the top of the interior for the first block
// that is neither empty nor leaves. An empty column yields MinBlockIndex().Y-1.
func (c *Chunk) GroundHeightAt(x, z int) int {
	y := c.MaxBlockIndex().Y
	for y >= c.MinBlockIndex().Y {
		t := c.Block(Index{x, y, z}).Type
		if t != BlockNone && t != BlockTreeLeaves {
			break
		}
		y--
	}
	return y
}

// ForEachBlockIndex visits every padded local index with its global index.
func (c *Chunk) ForEachBlockIndex(fn func(local, global Index)) {
	for x := 0; x < c.dims.X; x++ {
		for y := 0; y < c.dims.Y; y++ {
			for z := 0; z < c.dims.Z; z++ {
				local := Index{x, y, z}
				fn(local, c.ToGlobalIndex(local))
			}
		}
	}
}

// ForEachNonEmptyInteriorBlock visits the blocks a mesh is built from.
func (c *Chunk) ForEachNonEmptyInteriorBlock(fn func(Block)) {
	min, max := c.MinBlockIndex(), c.MaxBlockIndex()
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				b := c.blocks[c.offset(Index{x, y, z})]
				if !b.IsEmpty() {
					fn(b)
				}
			}
		}
	}
}

// ForEachGroundBlock visits the ground block of every interior column.
func (c *Chunk) ForEachGroundBlock(fn func(Block)) {
	min, max := c.MinBlockIndex(), c.MaxBlockIndex()
	for x := min.X; x <= max.X; x++ {
		for z := min.Z; z <= max.Z; z++ {
			y := c.GroundHeightAt(x, z)
			fn(c.Block(Index{x, y, z}))
		}
	}
}

// BlockTypes returns a copy of the padded block types in storage order.
func (c *Chunk) BlockTypes() []BlockType {
	out := make([]BlockType, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.Type
	}
	return out
}

// LocalIndexOf returns the padded local index that holds global block g.
// The result is outside the padded array when the chunk does not hold g.
func (c *Chunk) LocalIndexOf(g Index) Index {
	return g.Sub(c.FirstVisibleBlockGlobalIndex())
}
