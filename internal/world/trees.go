package world

import (
	"math/rand"

	"mini-terrain/internal/config"
)

const leafChance = 0.8

// Tree records the cells one placed tree occupies, as padded local indices.
type Tree struct {
	Trunk  []Index
	Leaves []Index
}

// Base is the lowest trunk cell.
func (t Tree) Base() Index { return t.Trunk[0] }

// TreeGenerator plants trees on a populated chunk. Placement is seeded per
// chunk, so a chunk always grows the same trees whatever the load order.
type TreeGenerator struct {
	cfg   config.WorldGen
	noise NoiseField
}

func NewTreeGenerator(cfg config.WorldGen, noise NoiseField) *TreeGenerator {
	return &TreeGenerator{cfg: cfg, noise: noise}
}

// Generate plants the chunk's trees and returns them. Canopy cells outside
// the chunk interior are dropped, never written into a neighbor.
func (g *TreeGenerator) Generate(c *Chunk) []Tree {
	index := c.Index()
	density := g.noise.Simplex2D(float64(index.X)*0.8, float64(index.Z)*0.8)
	if density <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(g.cfg.TreeSeed(index.X, index.Z)))
	count := randRange(rng, 0, int(10*density))

	min, max := c.MinBlockIndex(), c.MaxBlockIndex()
	var trees []Tree
	for i := 0; i < count; i++ {
		height := randRange(rng, 3, 14)
		halfWidth := randRange(rng, 2, 8) / 2

		x := randRange(rng, min.X+halfWidth, max.X-halfWidth+1)
		z := randRange(rng, min.Z+halfWidth, max.Z-halfWidth+1)

		trunk := trunkCells(c, x, z, height)
		if len(trunk) == 0 {
			continue
		}
		for _, local := range trunk {
			c.SetBlockType(local, BlockTreeTrunk)
		}

		leaves := g.leafCells(rng, c, trunk[0], height, halfWidth)
		for _, local := range leaves {
			c.SetBlockType(local, BlockTreeLeaves)
		}
		trees = append(trees, Tree{Trunk: trunk, Leaves: leaves})
	}
	return trees
}

func trunkCells(c *Chunk, x, z, height int) []Index {
	base := c.GroundHeightAt(x, z) + 1
	top := c.MaxBlockIndex().Y

	var cells []Index
	for y := base; y < base+height && y <= top; y++ {
		cells = append(cells, Index{x, y, z})
	}
	return cells
}

// leafCells lays height canopy layers starting at the trunk's top cell,
// shrinking the square by one cell per side every second layer.
func (g *TreeGenerator) leafCells(rng *rand.Rand, c *Chunk, base Index, height, halfWidth int) []Index {
	var cells []Index
	first := base.Y + height - 1
	for layer := 0; layer < height; layer++ {
		y := first + layer
		extent := halfWidth - layer/2
		for x := base.X - extent; x <= base.X+extent; x++ {
			for z := base.Z - extent; z <= base.Z+extent; z++ {
				if rng.Float64() >= leafChance {
					continue
				}
				local := Index{x, y, z}
				if c.InInterior(local) {
					cells = append(cells, local)
				}
			}
		}
	}
	return cells
}

// randRange draws from [lo, hi). An empty range yields lo without drawing.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}
