package world

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseField supplies the scalar noise terrain generation is keyed on.
// Implementations must be pure functions of their inputs.
type NoiseField interface {
	// Simplex2D returns a value in roughly [-1, 1].
	Simplex2D(x, z float64) float64
	// FractalPerlin3D returns fractal Perlin noise in roughly [-1, 1].
	FractalPerlin3D(x, y, z float64) float64
}

const (
	// Base sampling frequency applied to every input coordinate.
	noiseFrequency = 0.01

	fractalOctaves    = 3
	fractalLacunarity = 2.0
	fractalGain       = 0.5
)

type seededNoise struct {
	simplex  opensimplex.Noise
	perlin   *perlin.Perlin
	bounding float64 // normalizes the fractal sum back into [-1, 1]
}

// NewNoiseField returns the default noise field for seed.
func NewNoiseField(seed int64) NoiseField {
	amp, sum := 1.0, 0.0
	for i := 0; i < fractalOctaves; i++ {
		sum += amp
		amp *= fractalGain
	}
	return &seededNoise{
		simplex:  opensimplex.New(seed),
		perlin:   perlin.NewPerlin(1/fractalGain, fractalLacunarity, fractalOctaves, seed),
		bounding: 1 / sum,
	}
}

func (n *seededNoise) Simplex2D(x, z float64) float64 {
	return n.simplex.Eval2(x*noiseFrequency, z*noiseFrequency)
}

func (n *seededNoise) FractalPerlin3D(x, y, z float64) float64 {
	return n.perlin.Noise3D(x*noiseFrequency, y*noiseFrequency, z*noiseFrequency) * n.bounding
}
