package physics

import (
	"math"

	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource answers solidity queries on the world block grid.
type BlockSource interface {
	IsSolid(global world.Index) bool
}

// Ray is a half line. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point dist world units along the normalized direction.
func (r Ray) At(dist float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Mul(dist))
}

// SurfaceHit is where a ray first enters a solid block.
type SurfaceHit struct {
	// Point is the entry point nudged along the ray by blockSize*offset.
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Ray      Ray
	Block    world.Index // global index of the entered block
	Distance float32     // un-nudged distance from the ray origin
}

// RaycastSurface walks the block grid from the ray origin and reports the
// first solid block within maxDist. A positive offset pushes the point into
// the hit block, a negative one back into the empty block in front of it.
// Blocks are centered on global*blockSize.
func RaycastSurface(src BlockSource, blockSize float32, ray Ray, maxDist, offset float32) (SurfaceHit, bool) {
	defer profiling.Track("physics.RaycastSurface")()

	if ray.Direction.Len() == 0 || maxDist <= 0 || blockSize <= 0 {
		return SurfaceHit{}, false
	}
	dir := ray.Direction.Normalize()

	// Grid space: cell boundaries sit on integers.
	o := ray.Origin.Mul(1 / blockSize).Add(mgl32.Vec3{0.5, 0.5, 0.5})
	cell := world.Index{X: floor(o[0]), Y: floor(o[1]), Z: floor(o[2])}
	c := [3]int{cell.X, cell.Y, cell.Z}

	inf := float32(math.Inf(1))
	var step [3]int
	var tMax, tDelta [3]float32
	for a := 0; a < 3; a++ {
		switch {
		case dir[a] > 0:
			step[a] = 1
			tMax[a] = (float32(c[a]+1) - o[a]) * blockSize / dir[a]
			tDelta[a] = blockSize / dir[a]
		case dir[a] < 0:
			step[a] = -1
			tMax[a] = (float32(c[a]) - o[a]) * blockSize / dir[a]
			tDelta[a] = -blockSize / dir[a]
		default:
			tMax[a], tDelta[a] = inf, inf
		}
	}

	hit := func(dist float32, normal mgl32.Vec3) (SurfaceHit, bool) {
		point := ray.Origin.Add(dir.Mul(dist)).Add(dir.Mul(blockSize * offset))
		return SurfaceHit{
			Point:    point,
			Normal:   normal,
			Ray:      ray,
			Block:    world.Index{X: c[0], Y: c[1], Z: c[2]},
			Distance: dist,
		}, true
	}

	if src.IsSolid(cell) {
		return hit(0, dominantAxis(dir).Mul(-1))
	}

	for {
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		dist := tMax[a]
		if dist > maxDist {
			return SurfaceHit{}, false
		}
		c[a] += step[a]
		tMax[a] += tDelta[a]

		if src.IsSolid(world.Index{X: c[0], Y: c[1], Z: c[2]}) {
			var normal mgl32.Vec3
			normal[a] = float32(-step[a])
			return hit(dist, normal)
		}
	}
}

func dominantAxis(v mgl32.Vec3) mgl32.Vec3 {
	a := 0
	for i := 1; i < 3; i++ {
		if mgl32.Abs(v[i]) > mgl32.Abs(v[a]) {
			a = i
		}
	}
	var out mgl32.Vec3
	if v[a] < 0 {
		out[a] = -1
	} else {
		out[a] = 1
	}
	return out
}

func floor(f float32) int {
	return int(math.Floor(float64(f)))
}
