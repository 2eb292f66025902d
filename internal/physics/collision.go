package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-terrain/internal/world"
)

// Collides reports whether the box [min, max] overlaps any solid block.
func Collides(src BlockSource, blockSize float32, min, max mgl32.Vec3) bool {
	lo := world.Index{
		X: floor(min.X()/blockSize + 0.5),
		Y: floor(min.Y()/blockSize + 0.5),
		Z: floor(min.Z()/blockSize + 0.5),
	}
	hi := world.Index{
		X: floor(max.X()/blockSize + 0.5),
		Y: floor(max.Y()/blockSize + 0.5),
		Z: floor(max.Z()/blockSize + 0.5),
	}
	half := blockSize / 2

	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				g := world.Index{X: x, Y: y, Z: z}
				if !src.IsSolid(g) {
					continue
				}
				c := g.Vec3().Mul(blockSize)
				if min.X() < c.X()+half && max.X() > c.X()-half &&
					min.Y() < c.Y()+half && max.Y() > c.Y()-half &&
					min.Z() < c.Z()+half && max.Z() > c.Z()-half {
					return true
				}
			}
		}
	}
	return false
}

// GroundLevel scans down the column under (x, z) from block fromY to floorY
// and returns the world height of the top of the first solid block.
func GroundLevel(src BlockSource, blockSize, x, z float32, fromY, floorY int) (float32, bool) {
	bx := floor(x/blockSize + 0.5)
	bz := floor(z/blockSize + 0.5)
	for by := fromY; by >= floorY; by-- {
		if src.IsSolid(world.Index{X: bx, Y: by, Z: bz}) {
			return (float32(by) + 0.5) * blockSize, true
		}
	}
	return 0, false
}
