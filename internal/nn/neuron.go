package nn

import (
	"fmt"
	"slices"

	"github.com/born-ml/synapse/internal/optim"
	"gonum.org/v1/gonum/floats"
)

// Role decides where a neuron's error signal comes from.
type Role uint8

// Neuron roles.
const (
	// Hidden neurons receive their error by accumulation from downstream neurons.
	Hidden Role = iota
	// Output neurons receive their error from an external target value.
	Output
)

// String returns "hidden" or "output".
func (r Role) String() string {
	if r == Output {
		return "output"
	}
	return "hidden"
}

// Ref addresses a neuron inside the network arena: layer index, then neuron
// index within that layer.
type Ref struct {
	Layer int
	Index int
}

// Neuron is the smallest stateful unit of the network.
//
// A neuron never holds pointers to other neurons. Its fan-in is a list of
// Refs resolved against the network's layer slice on every pass, which is
// what makes the ordering rules of the passes checkable: the forward pass
// reads Ref targets' values, the backward pass writes their deltas.
//
// Invariant: len(weights) == len(historic) == len(inputs). Input-layer
// neurons have none of the three; their value is assigned by the caller.
type Neuron struct {
	bias       float64
	value      float64 // last activated output
	derivative float64 // activation derivative at the last output
	delta      float64 // accumulated error signal of the current backward pass
	role       Role
	activation Activation

	weights  []float64
	historic []float64 // RMSProp moving average of squared gradients
	inputs   []Ref

	effectiveRate float64   // mean learning rate applied by the last update
	scratch       []float64 // gathered inputs (forward) or gradients (backward)
}

func newNeuron(bias float64, role Role, act Activation) Neuron {
	return Neuron{
		bias:       bias,
		role:       role,
		activation: act,
	}
}

// wire establishes the fan-in edges. historic starts at 1.0 so the first
// RMSProp step uses the base learning rate.
func (n *Neuron) wire(inputs []Ref, weights []float64) {
	n.inputs = slices.Clone(inputs)
	n.weights = weights
	n.historic = Ones(len(weights))
	n.scratch = make([]float64, len(inputs))
}

func (n *Neuron) checkWired() error {
	if len(n.weights) != len(n.inputs) || len(n.historic) != len(n.inputs) {
		return fmt.Errorf("%w: %d weights, %d historic, %d inputs",
			ErrUnwiredNeuron, len(n.weights), len(n.historic), len(n.inputs))
	}
	return nil
}

// activate computes bias + Σ weights[i]*input[i] and stores the activated
// value and derivative. On a wiring mismatch the value is reset to 0.
func (n *Neuron) activate(arena []Layer) error {
	if err := n.checkWired(); err != nil {
		n.value = 0
		return err
	}

	in := n.scratch[:len(n.inputs)]
	for i, ref := range n.inputs {
		in[i] = arena[ref.Layer].neurons[ref.Index].value
	}

	sum := n.bias + floats.Dot(n.weights, in)
	n.value, n.derivative = n.activation.Eval(sum)
	return nil
}

// seed sets the raw error of an output neuron from its target value.
func (n *Neuron) seed(target float64) {
	n.delta = n.value - target
}

// backward finishes the neuron's error signal, pushes it upstream, and
// updates the weights and bias in place.
//
// delta must already hold either the seeded output error or everything the
// downstream neurons accumulated during this pass. Upstream deltas are
// accumulated with the weights as they were before this update.
//
// The bias moves by the unadjusted lr, independent of any per-weight rate
// the rule applies.
func (n *Neuron) backward(arena []Layer, rule optim.Rule, lr float64) (float64, error) {
	if err := n.checkWired(); err != nil {
		return 0, err
	}

	n.delta *= n.derivative

	grads := n.scratch[:len(n.inputs)]
	for i, ref := range n.inputs {
		up := &arena[ref.Layer].neurons[ref.Index]
		up.delta += n.weights[i] * n.delta
		grads[i] = n.delta * up.value
	}

	n.effectiveRate = rule.Step(n.weights, n.historic, grads, lr)
	n.bias -= lr * n.delta

	return n.delta, nil
}

// FanIn returns the number of upstream neurons.
func (n *Neuron) FanIn() int {
	return len(n.inputs)
}
