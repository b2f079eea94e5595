package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// HeNormal draws fanIn weights from N(0, sqrt(2/fanIn)).
//
// He initialization keeps the variance of (leaky) ReLU activations roughly
// constant from layer to layer. Each weight is an independent draw from src.
//
// Parameters:
//   - fanIn: Number of upstream neurons feeding the neuron
//   - src: Random source; nil uses the global source
//
// Returns a slice of length fanIn (empty when fanIn <= 0).
func HeNormal(fanIn int, src rand.Source) []float64 {
	if fanIn <= 0 {
		return []float64{}
	}

	dist := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(2.0 / float64(fanIn)),
		Src:   src,
	}

	weights := make([]float64, fanIn)
	for i := range weights {
		weights[i] = dist.Rand()
	}
	return weights
}

// Ones creates a slice of n ones.
//
// This is the starting value of the RMSProp historic gradients, so the first
// effective rate equals the base learning rate.
func Ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1.0
	}
	return s
}

// newSource returns a PCG source for seed, or a randomly seeded one when seed
// is zero.
func newSource(seed uint64) rand.Source {
	if seed == 0 {
		//nolint:gosec // Weight initialization is not security-critical.
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
