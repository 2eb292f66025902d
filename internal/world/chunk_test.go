package world

import (
	"testing"

	"mini-terrain/internal/config"
)

func newTestChunk(index Index) *Chunk {
	c := NewChunk()
	c.Setup(index, config.Default())
	return c
}

func TestChunkSetupDimensions(t *testing.T) {
	c := newTestChunk(Index{2, 0, -1})
	if c.Size() != (Index{8, 64, 8}) {
		t.Fatalf("size = %v", c.Size())
	}
	if got := len(c.BlockTypes()); got != 10*66*10 {
		t.Errorf("expected padded array of %d, got %d", 10*66*10, got)
	}
	if got := c.FirstVisibleBlockGlobalIndex(); got != (Index{16, 0, -8}) {
		t.Errorf("first visible = %v", got)
	}
	if c.Generated() {
		t.Error("fresh chunk reported generated")
	}
}

func TestLocalIndexAtInvertsToGlobal(t *testing.T) {
	for _, index := range []Index{{0, 0, 0}, {-3, 0, 5}, {1, -1, -1}} {
		c := newTestChunk(index)
		c.ForEachBlockIndex(func(local, global Index) {
			center := global.Vec3().Mul(c.BlockSize())
			if got := c.LocalIndexAt(center); got != local {
				t.Fatalf("chunk %v: LocalIndexAt(%v) = %v, want %v", index, center, got, local)
			}
		})
	}
}

func TestHaloMirrorsNeighborInterior(t *testing.T) {
	a := newTestChunk(Index{0, 0, 0})
	b := newTestChunk(Index{1, 0, 0})

	max := a.MaxBlockIndex()
	for y := 1; y <= max.Y; y++ {
		for z := 1; z <= max.Z; z++ {
			halo := a.ToGlobalIndex(Index{max.X + 1, y, z})
			interior := b.ToGlobalIndex(Index{1, y, z})
			if halo != interior {
				t.Fatalf("halo global %v != neighbor interior global %v", halo, interior)
			}
		}
	}
}

func TestSetupDiscardsPreviousContents(t *testing.T) {
	c := newTestChunk(Index{0, 0, 0})
	c.SetBlockType(Index{1, 1, 1}, BlockStone)
	c.Setup(Index{4, 0, 4}, config.Default())
	if !c.IsBlockEmpty(Index{1, 1, 1}) {
		t.Error("block survived re-setup")
	}
	if c.Index() != (Index{4, 0, 4}) {
		t.Errorf("index = %v", c.Index())
	}
}

func TestGroundHeightSkipsLeaves(t *testing.T) {
	c := newTestChunk(Index{0, 0, 0})
	for y := 1; y <= 10; y++ {
		c.SetBlockType(Index{3, y, 3}, BlockDirt)
	}
	c.SetBlockType(Index{3, 20, 3}, BlockTreeLeaves)
	if got := c.GroundHeightAt(3, 3); got != 10 {
		t.Errorf("ground height = %d, want 10", got)
	}
	if got := c.GroundHeightAt(4, 4); got != 0 {
		t.Errorf("empty column ground height = %d, want 0", got)
	}
}

func TestChunkIndexForBlockMatchesOwnership(t *testing.T) {
	cfg := config.Default()
	for _, g := range []Index{{0, 5, 0}, {1, 1, 1}, {8, 64, 8}, {9, 65, -7}, {-8, 3, -9}} {
		ci := ChunkIndexForBlock(cfg, g)
		c := NewChunk()
		c.Setup(ci, cfg)
		local := c.LocalIndexAt(g.Vec3().Mul(cfg.BlockSize))
		if !c.InInterior(local) {
			t.Errorf("block %v: local %v not interior of chunk %v", g, local, ci)
		}
		if got := c.ToGlobalIndex(local); got != g {
			t.Errorf("block %v round-tripped to %v", g, got)
		}
	}
}

func TestLocalIndexOfMatchesPointMapping(t *testing.T) {
	c := newTestChunk(Index{-2, 0, 3})
	c.ForEachBlockIndex(func(local, global Index) {
		if got := c.LocalIndexOf(global); got != local {
			t.Fatalf("LocalIndexOf(%v) = %v, want %v", global, got, local)
		}
	})
	if c.InBounds(c.LocalIndexOf(Index{100, 0, 0})) {
		t.Error("far block reported in bounds")
	}
}
