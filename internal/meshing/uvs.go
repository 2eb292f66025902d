package meshing

import (
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FaceCategory selects which tile of a block type a face shows.
type FaceCategory uint8

const (
	FaceTop FaceCategory = iota
	FaceSide
	FaceBottom
)

// UVFunc maps a block face to the four texture coordinates of its quad,
// in the same order as the quad's corners.
type UVFunc func(t world.BlockType, category FaceCategory) [4]mgl32.Vec2

const (
	atlasSize  = 128
	tileSize   = 32
	tileInset  = 0.001 // keeps sampling off neighboring tiles
	categories = 3
)

type tile struct{ u, v int }

var (
	tileDirt         = tile{0, 0}
	tileGrass        = tile{1, 0}
	tileGrassAndDirt = tile{0, 1}
	tileStone        = tile{3, 0}
	tileTrunk        = tile{2, 0}
	tileTrunkTip     = tile{2, 1}
	tileLeaves       = tile{1, 1}
)

// blockTiles lists top, side and bottom tiles per block type.
var blockTiles = map[world.BlockType][categories]tile{
	world.BlockDirt:       {tileDirt, tileDirt, tileDirt},
	world.BlockGrass:      {tileGrass, tileGrassAndDirt, tileDirt},
	world.BlockStone:      {tileStone, tileStone, tileStone},
	world.BlockTreeTrunk:  {tileTrunkTip, tileTrunk, tileTrunkTip},
	world.BlockTreeLeaves: {tileLeaves, tileLeaves, tileLeaves},
}

var atlasTable = buildAtlasTable()

func buildAtlasTable() map[world.BlockType][categories][4]mgl32.Vec2 {
	table := make(map[world.BlockType][categories][4]mgl32.Vec2, len(blockTiles))
	for t, tiles := range blockTiles {
		var uvs [categories][4]mgl32.Vec2
		for i, tl := range tiles {
			uvs[i] = tileUVs(tl)
		}
		table[t] = uvs
	}
	return table
}

func tileUVs(tl tile) [4]mgl32.Vec2 {
	u := float32(tl.u * tileSize)
	v := float32(tl.v * tileSize)
	const size, f = float32(atlasSize), float32(tileInset)
	return [4]mgl32.Vec2{
		{u/size + f, v/size + f},
		{u/size + f, (v+tileSize)/size - f},
		{(u+tileSize)/size - f, (v+tileSize)/size - f},
		{(u+tileSize)/size - f, v/size + f},
	}
}

// AtlasUVs maps faces onto the default 128px terrain atlas of 32px tiles.
// Types without a tile get zero coordinates.
func AtlasUVs(t world.BlockType, category FaceCategory) [4]mgl32.Vec2 {
	uvs, ok := atlasTable[t]
	if !ok || int(category) >= categories {
		return [4]mgl32.Vec2{}
	}
	return uvs[category]
}
