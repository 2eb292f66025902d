package config

import "fmt"

// WorldGen holds terrain generation settings.
type WorldGen struct {
	// Seed keys the noise field. Determinism across sessions is not required,
	// but a fixed seed makes it so.
	Seed       int64 `yaml:"seed"`
	WaterLevel int   `yaml:"water_level"` // in blocks
	Caves      bool  `yaml:"caves"`
	Trees      bool  `yaml:"trees"`
	// TreeSeedStride derives the per-chunk tree seed: x*stride + z.
	TreeSeedStride int `yaml:"tree_seed_stride"`
}

// DefaultWorldGen returns generation settings matching the reference terrain.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		Seed:           1337,
		WaterLevel:     27,
		Caves:          true,
		Trees:          true,
		TreeSeedStride: 10000,
	}
}

// TreeSeed is the tree RNG seed for the chunk at (chunkX, chunkZ).
func (w WorldGen) TreeSeed(chunkX, chunkZ int) int64 {
	return int64(chunkX)*int64(w.TreeSeedStride) + int64(chunkZ)
}

func (w WorldGen) validate() error {
	if w.WaterLevel < 0 {
		return fmt.Errorf("world_gen.water_level must not be negative, got %d", w.WaterLevel)
	}
	if w.TreeSeedStride == 0 {
		return fmt.Errorf("world_gen.tree_seed_stride must not be zero")
	}
	return nil
}
