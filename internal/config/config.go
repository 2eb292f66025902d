package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	minStreamRadius = 1
	maxStreamRadius = 32
)

// Config holds the static terrain settings. It is loaded once per session.
type Config struct {
	// Interior size of a chunk in blocks (x, y, z).
	ChunkSize [3]int  `yaml:"chunk_size"`
	BlockSize float32 `yaml:"block_size"`

	// Streaming window, in chunks.
	StreamRadius    int `yaml:"stream_radius"`
	StreamMaxHeight int `yaml:"stream_max_height"`
	// ChunkBuildsPerSecond throttles streaming; 0 means unlimited.
	ChunkBuildsPerSecond float64 `yaml:"chunk_builds_per_second"`

	// ReachDistance is the max terrain raycast distance in world units.
	ReachDistance float32 `yaml:"reach_distance"`
	// LegacyHaloPropagation only mirrors edits into face and edge neighbors,
	// skipping the corner neighbor of a block that touches three chunk faces.
	LegacyHaloPropagation bool `yaml:"legacy_halo_propagation"`

	WorldGen WorldGen `yaml:"world_gen"`
}

// Default returns the reference configuration: 8x64x8 chunks, unit blocks,
// water at 27 and a streaming radius of 10 chunks.
func Default() Config {
	return Config{
		ChunkSize:       [3]int{8, 64, 8},
		BlockSize:       1.0,
		StreamRadius:    10,
		StreamMaxHeight: 0,
		ReachDistance:   3.0,
		WorldGen:        DefaultWorldGen(),
	}
}

// Load reads a YAML file layered over Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML layered over Default, then normalizes and validates it.
func Parse(raw []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Normalize clamps values that have a sane range instead of failing on them.
func (c *Config) Normalize() {
	if c.StreamRadius < minStreamRadius {
		c.StreamRadius = minStreamRadius
	}
	if c.StreamRadius > maxStreamRadius {
		c.StreamRadius = maxStreamRadius
	}
	if c.ChunkBuildsPerSecond < 0 {
		c.ChunkBuildsPerSecond = 0
	}
	if c.ReachDistance <= 0 {
		c.ReachDistance = Default().ReachDistance
	}
}

// Validate reports settings no chunk could be built with.
func (c Config) Validate() error {
	var errs []error
	for axis, n := range c.ChunkSize {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("chunk_size[%d] must be positive, got %d", axis, n))
		}
	}
	if c.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block_size must be positive, got %v", c.BlockSize))
	}
	if err := c.WorldGen.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// HalfBlockSize is half a block edge in world units.
func (c Config) HalfBlockSize() float32 {
	return c.BlockSize / 2
}

// ChunkWorldSize is the interior extent of a chunk in world units.
func (c Config) ChunkWorldSize() [3]float32 {
	return [3]float32{
		float32(c.ChunkSize[0]) * c.BlockSize,
		float32(c.ChunkSize[1]) * c.BlockSize,
		float32(c.ChunkSize[2]) * c.BlockSize,
	}
}
