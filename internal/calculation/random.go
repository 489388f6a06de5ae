package calculation

import (
	"math"
	"math/rand/v2"
)

// Uniform yields values in [0, 1). *rand.Rand satisfies it.
type Uniform interface {
	Float64() float64
}

// RandomSource draws standard-normal and Student-t variates from an owned uniform stream.
// A RandomSource is not safe for concurrent use; give each path or worker its own.
type RandomSource struct {
	uniform Uniform
}

// NewRandomSource returns a source backed by a PCG generator. The stream index lets
// callers derive independent, reproducible streams from a single seed.
func NewRandomSource(seed int64, stream uint64) *RandomSource {
	return &RandomSource{uniform: rand.New(rand.NewPCG(uint64(seed), stream))}
}

// NewRandomSourceFrom wraps an arbitrary uniform generator (useful for scripted draws in tests).
func NewRandomSourceFrom(u Uniform) *RandomSource {
	return &RandomSource{uniform: u}
}

// openUniform returns a value in (0, 1); zero is resampled because ln(0) is undefined.
func (rs *RandomSource) openUniform() float64 {
	for {
		if u := rs.uniform.Float64(); u > 0 {
			return u
		}
	}
}

// StandardNormal draws from N(0,1) with the Box-Muller transform.
func (rs *RandomSource) StandardNormal() float64 {
	u1 := rs.openUniform()
	u2 := rs.uniform.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// StudentT approximates a Student-t variate as z / sqrt(sumSq/df), where sumSq adds
// floor(max(1, df)) squared standard normals. For non-integer df the chi-square term
// is therefore discretised; callers that need exact continuous df should not rely on it.
func (rs *RandomSource) StudentT(df float64) float64 {
	z := rs.StandardNormal()
	n := int(math.Floor(math.Max(1, df)))
	var sumSq float64
	for range n {
		zi := rs.StandardNormal()
		sumSq += zi * zi
	}
	return z / math.Sqrt(sumSq/df)
}
