package nn

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Report is a read-only snapshot of a network for diagnostics.
type Report struct {
	LearningRate float64
	Step         int
	Layers       []LayerReport
}

// LayerReport describes one layer.
type LayerReport struct {
	Index          int
	Role           Role
	Activation     Activation
	MeanActivation float64
	Neurons        []NeuronReport
}

// NeuronReport describes one neuron. Slices are copies.
type NeuronReport struct {
	Index         int
	Role          Role
	Value         float64 // last activation
	Derivative    float64
	Error         float64 // delta left by the last backward pass
	EffectiveRate float64 // mean learning rate of the last weight update
	Bias          float64
	Weights       []float64
	Historic      []float64
}

// Report returns a snapshot of every layer and neuron. It does not mutate
// the network.
func (net *Network) Report() Report {
	r := Report{
		LearningRate: net.learningRate,
		Step:         net.step,
		Layers:       make([]LayerReport, len(net.layers)),
	}

	for i := range net.layers {
		l := &net.layers[i]
		lr := LayerReport{
			Index:      i,
			Role:       l.role,
			Activation: l.activation,
			Neurons:    make([]NeuronReport, len(l.neurons)),
		}
		values := make([]float64, len(l.neurons))

		for j := range l.neurons {
			n := &l.neurons[j]
			values[j] = n.value
			lr.Neurons[j] = NeuronReport{
				Index:         j,
				Role:          n.role,
				Value:         n.value,
				Derivative:    n.derivative,
				Error:         n.delta,
				EffectiveRate: n.effectiveRate,
				Bias:          n.bias,
				Weights:       slices.Clone(n.weights),
				Historic:      slices.Clone(n.historic),
			}
		}
		lr.MeanActivation = stat.Mean(values, nil)
		r.Layers[i] = lr
	}

	return r
}

// WriteTo renders the report as a text table.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Neural Network Visualization:\n")
	fmt.Fprintf(&buf, "Base Learning Rate: %g  Step: %d\n", r.LearningRate, r.Step)
	for _, l := range r.Layers {
		fmt.Fprintf(&buf, "Layer %d (%d neurons, %s, mean activation %.4f):\n",
			l.Index, len(l.Neurons), l.Activation, l.MeanActivation)
		for _, n := range l.Neurons {
			fmt.Fprintf(&buf, "  Neuron %2d %-6s | Effective learning rate: %.4f | Activation: %.4f | Error: %.4f\n",
				n.Index, n.Role, n.EffectiveRate, n.Value, n.Error)
		}
		buf.WriteByte('\n')
	}

	return buf.WriteTo(w)
}

// String returns the WriteTo rendering.
func (r Report) String() string {
	var buf bytes.Buffer
	_, _ = r.WriteTo(&buf)
	return buf.String()
}
