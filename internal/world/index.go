package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Index identifies a block or a chunk on the integer grid.
type Index struct {
	X, Y, Z int
}

// InvalidIndex means "no index".
var InvalidIndex = Index{math.MinInt32, math.MinInt32, math.MinInt32}

// Unit directions. Forward is +Z, Right is +X.
var (
	Up      = Index{0, 1, 0}
	Down    = Index{0, -1, 0}
	Forward = Index{0, 0, 1}
	Back    = Index{0, 0, -1}
	Right   = Index{1, 0, 0}
	Left    = Index{-1, 0, 0}
)

// Step returns the index offset by d. d may combine several unit steps.
func (i Index) Step(d Index) Index {
	return Index{i.X + d.X, i.Y + d.Y, i.Z + d.Z}
}

// Sub returns i - o.
func (i Index) Sub(o Index) Index {
	return Index{i.X - o.X, i.Y - o.Y, i.Z - o.Z}
}

// Mul scales each axis of i by the matching axis of o.
func (i Index) Mul(o Index) Index {
	return Index{i.X * o.X, i.Y * o.Y, i.Z * o.Z}
}

func (i Index) StepUp() Index      { return i.Step(Up) }
func (i Index) StepDown() Index    { return i.Step(Down) }
func (i Index) StepForward() Index { return i.Step(Forward) }
func (i Index) StepBack() Index    { return i.Step(Back) }
func (i Index) StepRight() Index   { return i.Step(Right) }
func (i Index) StepLeft() Index    { return i.Step(Left) }

// IsValid reports whether i is not the sentinel.
func (i Index) IsValid() bool {
	return i != InvalidIndex
}

// Vec3 converts the index to a float vector.
func (i Index) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(i.X), float32(i.Y), float32(i.Z)}
}

// IndicesAround returns every index in the inclusive box i±radius,
// X outermost, then Y, then Z.
func (i Index) IndicesAround(radius Index) []Index {
	out := make([]Index, 0, (2*radius.X+1)*(2*radius.Y+1)*(2*radius.Z+1))
	for x := i.X - radius.X; x <= i.X+radius.X; x++ {
		for y := i.Y - radius.Y; y <= i.Y+radius.Y; y++ {
			for z := i.Z - radius.Z; z <= i.Z+radius.Z; z++ {
				out = append(out, Index{x, y, z})
			}
		}
	}
	return out
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
