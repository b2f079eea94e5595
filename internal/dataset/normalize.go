package dataset

import (
	"gonum.org/v1/gonum/floats"
)

// MinMax rescales every feature to [0, 1] using the range observed by Fit.
//
// A feature whose minimum equals its maximum carries no information and is
// mapped to 0.
type MinMax struct {
	Min []float64
	Max []float64
}

// Fit records the per-feature range of the inputs in set.
func (m *MinMax) Fit(set *Set) {
	m.Min = make([]float64, set.Features)
	m.Max = make([]float64, set.Features)
	if set.Len() == 0 {
		return
	}

	col := make([]float64, set.Len())
	for j := 0; j < set.Features; j++ {
		for i, ex := range set.Examples {
			col[i] = ex.Input[j]
		}
		m.Min[j] = floats.Min(col)
		m.Max[j] = floats.Max(col)
	}
}

// Transform returns a rescaled copy of x. Values outside the fitted range
// land outside [0, 1]; they are not clipped.
func (m *MinMax) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if j >= len(m.Min) {
			out[j] = v
			continue
		}
		span := m.Max[j] - m.Min[j]
		if span == 0 {
			continue
		}
		out[j] = (v - m.Min[j]) / span
	}
	return out
}

// Apply replaces the input of every example in set with its rescaled copy.
func (m *MinMax) Apply(set *Set) {
	for i := range set.Examples {
		set.Examples[i].Input = m.Transform(set.Examples[i].Input)
	}
}

// Normalize fits a MinMax on set, applies it and returns it so the same
// scaling can be reused at prediction time.
func Normalize(set *Set) *MinMax {
	m := &MinMax{}
	m.Fit(set)
	m.Apply(set)
	return m
}
