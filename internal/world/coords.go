package world

import (
	"mini-terrain/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkIndexAt returns the chunk whose world-space cell contains p.
// Used to locate the viewpoint for streaming.
func ChunkIndexAt(cfg config.Config, p mgl32.Vec3) Index {
	size := cfg.ChunkWorldSize()
	return Index{
		floorToInt(p.X() / size[0]),
		floorToInt(p.Y() / size[1]),
		floorToInt(p.Z() / size[2]),
	}
}

// BlockIndexAt returns the global index of the block containing p.
// Block g is centered on g*blockSize.
func BlockIndexAt(cfg config.Config, p mgl32.Vec3) Index {
	return Index{
		floorToInt(p.X()/cfg.BlockSize + 0.5),
		floorToInt(p.Y()/cfg.BlockSize + 0.5),
		floorToInt(p.Z()/cfg.BlockSize + 0.5),
	}
}

// ChunkIndexForBlock returns the chunk that owns global block g in its
// interior. Chunk c owns globals c*size+1 .. c*size+size on each axis.
func ChunkIndexForBlock(cfg config.Config, g Index) Index {
	return Index{
		floorDiv(g.X-1, cfg.ChunkSize[0]),
		floorDiv(g.Y-1, cfg.ChunkSize[1]),
		floorDiv(g.Z-1, cfg.ChunkSize[2]),
	}
}
