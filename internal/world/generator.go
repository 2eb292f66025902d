package world

import (
	"math"

	"mini-terrain/internal/config"
	"mini-terrain/internal/profiling"
)

// Generator classifies blocks from a noise field and decorates chunks with trees.
type Generator struct {
	cfg   config.Config
	noise NoiseField
	trees *TreeGenerator
}

// NewGenerator creates a generator over noise.
func NewGenerator(cfg config.Config, noise NoiseField) *Generator {
	return &Generator{
		cfg:   cfg,
		noise: noise,
		trees: NewTreeGenerator(cfg.WorldGen, noise),
	}
}

// columnHeights are the surface and stone heights of one (x, z) column,
// in world units.
type columnHeights struct {
	land  float64
	stone float64
}

func (g *Generator) heightsAt(x, z float64) columnHeights {
	n := g.noise
	chunkHeight := float64(g.cfg.ChunkSize[1])
	roughness := n.Simplex2D(x*0.3, z*0.3) + 0.5

	heightMap := n.Simplex2D(x*0.8, z*0.8)*10 +
		n.Simplex2D(x*3.0, z*3.0)*10*roughness

	stoneHeightMap := n.Simplex2D(x*1.0, z*1.0)*10 +
		(n.Simplex2D(x*5.0, z*5.0)+0.5)*20*roughness

	return columnHeights{
		land:  chunkHeight*0.5 + heightMap,
		stone: chunkHeight*0.25 + stoneHeightMap,
	}
}

func (g *Generator) surfaceType(y float64, h columnHeights) BlockType {
	if y > h.land {
		return BlockNone
	}
	t := BlockDirt
	waterLine := float64(g.cfg.WorldGen.WaterLevel)*float64(g.cfg.BlockSize) - 2
	if y > h.land-1 && y > waterLine {
		t = BlockGrass
	}
	if y <= h.stone {
		t = BlockStone
	}
	return t
}

func (g *Generator) carved(x, y, z float64) bool {
	if !g.cfg.WorldGen.Caves {
		return false
	}
	caveNoise := g.noise.FractalPerlin3D(x*5.0, y*10.0, z*5.0)
	caveMask := math.Max(g.noise.Simplex2D(x*0.3, z*0.3)+0.3, 0.2)
	return caveNoise > caveMask
}

func (g *Generator) position(global Index) (x, y, z float64) {
	bs := float64(g.cfg.BlockSize)
	return float64(global.X) * bs, float64(global.Y) * bs, float64(global.Z) * bs
}

// SurfaceTypeAt classifies a block by the layered height maps alone,
// before caves are carved.
func (g *Generator) SurfaceTypeAt(global Index) BlockType {
	x, y, z := g.position(global)
	return g.surfaceType(y, g.heightsAt(x, z))
}

// BlockTypeAt is the final classification of a block. Cave carving can only
// turn a block empty.
func (g *Generator) BlockTypeAt(global Index) BlockType {
	x, y, z := g.position(global)
	if g.carved(x, y, z) {
		return BlockNone
	}
	return g.surfaceType(y, g.heightsAt(x, z))
}

// Populate classifies every block of c, halo included, then plants trees.
// It returns the trees that were placed.
func (g *Generator) Populate(c *Chunk) []Tree {
	defer profiling.Track("world.Generator.Populate")()

	for lx := 0; lx < c.dims.X; lx++ {
		for lz := 0; lz < c.dims.Z; lz++ {
			column := c.ToGlobalIndex(Index{lx, 0, lz})
			x, _, z := g.position(column)
			h := g.heightsAt(x, z)

			for ly := 0; ly < c.dims.Y; ly++ {
				local := Index{lx, ly, lz}
				global := c.ToGlobalIndex(local)
				_, y, _ := g.position(global)

				t := g.surfaceType(y, h)
				if t != BlockNone && g.carved(x, y, z) {
					t = BlockNone
				}
				c.SetBlock(local, Block{Type: t, Local: local, Global: global, Size: c.blockSize})
			}
		}
	}
	c.generated = true

	if !g.cfg.WorldGen.Trees {
		return nil
	}
	return g.trees.Generate(c)
}

// PopulateEmpty fills c with empty blocks. Used for placeholder chunks that
// only need to hold halo edits.
func (g *Generator) PopulateEmpty(c *Chunk) {
	c.ForEachBlockIndex(func(local, global Index) {
		c.SetBlock(local, Block{Type: BlockNone, Local: local, Global: global, Size: c.blockSize})
	})
	c.generated = false
}
