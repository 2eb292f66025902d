package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint8

const (
	BlockNone BlockType = iota // air
	BlockDirt
	BlockGrass
	BlockStone
	BlockTreeTrunk
	BlockTreeLeaves
)

var blockTypeNames = [...]string{
	BlockNone:       "none",
	BlockDirt:       "dirt",
	BlockGrass:      "grass",
	BlockStone:      "stone",
	BlockTreeTrunk:  "tree_trunk",
	BlockTreeLeaves: "tree_leaves",
}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return "unknown"
}

// Block is an immutable block value. Chunks replace blocks wholesale.
type Block struct {
	Type   BlockType
	Local  Index // position inside the owning chunk's padded array
	Global Index // position on the world block grid
	Size   float32
}

func (b Block) IsEmpty() bool {
	return b.Type == BlockNone
}

// Center returns the world-space center of the block.
func (b Block) Center() mgl32.Vec3 {
	return b.Global.Vec3().Mul(b.Size)
}

// Bounds returns the axis-aligned box of the block.
func (b Block) Bounds() (min, max mgl32.Vec3) {
	c := b.Center()
	h := b.Size / 2
	half := mgl32.Vec3{h, h, h}
	return c.Sub(half), c.Add(half)
}
