package world

import (
	"crypto/sha256"
	"testing"

	"mini-terrain/internal/config"
)

// constNoise is a flat noise field for predictable terrain.
type constNoise struct {
	simplex float64
	perlin  float64
}

func (n constNoise) Simplex2D(x, z float64) float64          { return n.simplex }
func (n constNoise) FractalPerlin3D(x, y, z float64) float64 { return n.perlin }

func populate(cfg config.Config, noise NoiseField, index Index) *Chunk {
	c := NewChunk()
	c.Setup(index, cfg)
	NewGenerator(cfg, noise).Populate(c)
	return c
}

// hashChunk hashes the padded block types of a chunk.
func hashChunk(c *Chunk) [32]byte {
	types := c.BlockTypes()
	buf := make([]byte, len(types))
	for i, t := range types {
		buf[i] = byte(t)
	}
	return sha256.Sum256(buf)
}

func TestFlatNoiseLayers(t *testing.T) {
	// Zero noise: land height 32, stone height 21, water line 25.
	cfg := config.Default()
	c := populate(cfg, constNoise{}, Index{0, 0, 0})

	if !c.Generated() {
		t.Fatal("populated chunk not marked generated")
	}
	for y := 0; y <= c.MaxBlockIndex().Y+1; y++ {
		var want BlockType
		switch {
		case y > 32:
			want = BlockNone
		case y == 32:
			want = BlockGrass
		case y > 21:
			want = BlockDirt
		default:
			want = BlockStone
		}
		if got := c.Block(Index{4, y, 4}).Type; got != want {
			t.Errorf("y=%d: got %v, want %v", y, got, want)
		}
	}
}

func TestNoGrassBelowWaterLine(t *testing.T) {
	cfg := config.Default()
	cfg.WorldGen.WaterLevel = 40
	c := populate(cfg, constNoise{}, Index{0, 0, 0})
	if got := c.Block(Index{4, 32, 4}).Type; got != BlockDirt {
		t.Errorf("surface under water = %v, want dirt", got)
	}
}

func TestCavesCarveEverything(t *testing.T) {
	cfg := config.Default()
	c := populate(cfg, constNoise{perlin: 1}, Index{0, 0, 0})
	for _, bt := range c.BlockTypes() {
		if bt != BlockNone {
			t.Fatalf("expected fully carved chunk, found %v", bt)
		}
	}

	cfg.WorldGen.Caves = false
	c = populate(cfg, constNoise{perlin: 1}, Index{0, 0, 0})
	if c.IsBlockEmpty(Index{4, 10, 4}) {
		t.Error("caves disabled but block carved")
	}
}

func TestCavesOnlyRemoveMaterial(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(cfg, NewNoiseField(cfg.WorldGen.Seed))
	c := NewChunk()
	c.Setup(Index{3, 0, -2}, cfg)
	c.ForEachBlockIndex(func(_, global Index) {
		final := g.BlockTypeAt(global)
		if final != BlockNone && final != g.SurfaceTypeAt(global) {
			t.Fatalf("block %v: carving changed %v into %v", global, g.SurfaceTypeAt(global), final)
		}
	})
}

func TestPopulateDeterministic(t *testing.T) {
	cfg := config.Default()
	noise := NewNoiseField(cfg.WorldGen.Seed)
	for _, index := range []Index{{0, 0, 0}, {-4, 0, 7}} {
		a := populate(cfg, noise, index)
		b := populate(cfg, NewNoiseField(cfg.WorldGen.Seed), index)
		if hashChunk(a) != hashChunk(b) {
			t.Errorf("chunk %v differs between runs", index)
		}
	}
}

func TestPopulateMatchesPointClassification(t *testing.T) {
	cfg := config.Default()
	cfg.WorldGen.Trees = false
	noise := NewNoiseField(cfg.WorldGen.Seed)
	g := NewGenerator(cfg, noise)
	c := populate(cfg, noise, Index{1, 0, 1})
	c.ForEachBlockIndex(func(local, global Index) {
		if got, want := c.Block(local).Type, g.BlockTypeAt(global); got != want {
			t.Fatalf("local %v: populated %v, classified %v", local, got, want)
		}
	})
}

func TestHaloMatchesNeighborWithoutTrees(t *testing.T) {
	cfg := config.Default()
	cfg.WorldGen.Trees = false
	noise := NewNoiseField(cfg.WorldGen.Seed)
	a := populate(cfg, noise, Index{0, 0, 0})
	b := populate(cfg, noise, Index{0, 0, 1})

	max := a.MaxBlockIndex()
	for x := 1; x <= max.X; x++ {
		for y := 1; y <= max.Y; y++ {
			halo := a.Block(Index{x, y, max.Z + 1})
			interior := b.Block(Index{x, y, 1})
			if halo.Global != interior.Global || halo.Type != interior.Type {
				t.Fatalf("halo %+v does not mirror neighbor %+v", halo, interior)
			}
		}
	}
}

func TestPopulateEmpty(t *testing.T) {
	cfg := config.Default()
	c := populate(cfg, constNoise{}, Index{0, 0, 0})
	NewGenerator(cfg, constNoise{}).PopulateEmpty(c)
	if c.Generated() {
		t.Error("placeholder reported generated")
	}
	for _, bt := range c.BlockTypes() {
		if bt != BlockNone {
			t.Fatalf("placeholder holds %v", bt)
		}
	}
	if got := c.Block(Index{2, 3, 4}).Global; got != c.ToGlobalIndex(Index{2, 3, 4}) {
		t.Errorf("placeholder block global = %v", got)
	}
}

func BenchmarkPopulate(b *testing.B) {
	cfg := config.Default()
	g := NewGenerator(cfg, NewNoiseField(cfg.WorldGen.Seed))
	c := NewChunk()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Setup(Index{i % 16, 0, i / 16}, cfg)
		g.Populate(c)
	}
}
