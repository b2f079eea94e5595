package nn

import (
	"math/rand/v2"

	"github.com/born-ml/synapse/internal/parallel"
)

// Layer is an ordered, fixed-size collection of neurons sharing one
// activation function and one role.
//
// A layer owns its neurons exclusively; other layers reach them only through
// Refs resolved against the network's layer slice.
type Layer struct {
	index      int
	neurons    []Neuron
	activation Activation
	role       Role
}

// newLayer builds size unwired neurons.
func newLayer(index, size int, role Role, bias float64, act Activation) Layer {
	neurons := make([]Neuron, size)
	for i := range neurons {
		neurons[i] = newNeuron(bias, role, act)
	}

	return Layer{
		index:      index,
		neurons:    neurons,
		activation: act,
		role:       role,
	}
}

// Size returns the number of neurons.
func (l *Layer) Size() int {
	return len(l.neurons)
}

// Role returns the role shared by every neuron of the layer.
func (l *Layer) Role() Role {
	return l.role
}

// Activation returns the shared activation function.
func (l *Layer) Activation() Activation {
	return l.activation
}

// SetActivation rebinds the shared activation and propagates it to every neuron.
func (l *Layer) SetActivation(a Activation) {
	l.activation = a
	for i := range l.neurons {
		l.neurons[i].activation = a
	}
}

// refs returns one Ref per neuron, in order.
func (l *Layer) refs() []Ref {
	refs := make([]Ref, len(l.neurons))
	for i := range refs {
		refs[i] = Ref{Layer: l.index, Index: i}
	}
	return refs
}

// wireTo fully connects every neuron of l to every neuron of prev, drawing
// He-normal weights from src.
func (l *Layer) wireTo(prev *Layer, src rand.Source) {
	refs := prev.refs()
	for i := range l.neurons {
		l.neurons[i].wire(refs, HeNormal(len(refs), src))
	}
}

// activateAll activates every neuron from the previous layer's values.
//
// Neurons of one layer are independent of each other, so cfg may spread
// them over goroutines; activateAll returns only after all of them finished.
func (l *Layer) activateAll(arena []Layer, cfg parallel.Config) error {
	return parallel.ForErr(len(l.neurons), func(i int) error {
		return l.neurons[i].activate(arena)
	}, cfg)
}

// values copies the neurons' activation values.
func (l *Layer) values() []float64 {
	out := make([]float64, len(l.neurons))
	for i := range l.neurons {
		out[i] = l.neurons[i].value
	}
	return out
}
