package nn

import (
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/synapse/internal/serialization"
)

// checkpointKind identifies network payloads in the serialization envelope.
const checkpointKind = "network"

// checkpointState is the JSON payload of a network checkpoint.
type checkpointState struct {
	Structure    []int        `json:"structure"`
	LearningRate float64      `json:"learning_rate"`
	Step         int          `json:"step"`
	Layers       []layerState `json:"layers"`
}

type layerState struct {
	Activation string        `json:"activation"`
	Neurons    []neuronState `json:"neurons"`
}

type neuronState struct {
	Bias     float64   `json:"bias"`
	Weights  []float64 `json:"weights,omitempty"`
	Historic []float64 `json:"historic,omitempty"`
}

// SaveCheckpoint writes the trainable state of the network to w: structure,
// per-layer activation, weights, biases, historic gradients, learning rate
// and step counter.
//
// Activation values and deltas are scratch state and are not saved.
func (net *Network) SaveCheckpoint(w io.Writer) error {
	if len(net.layers) == 0 {
		return ErrEmptyNetwork
	}

	state := checkpointState{
		Structure:    net.Structure(),
		LearningRate: net.learningRate,
		Step:         net.step,
		Layers:       make([]layerState, len(net.layers)),
	}
	for i := range net.layers {
		l := &net.layers[i]
		ls := layerState{
			Activation: l.activation.String(),
			Neurons:    make([]neuronState, len(l.neurons)),
		}
		for j := range l.neurons {
			n := &l.neurons[j]
			ls.Neurons[j] = neuronState{Bias: n.bias, Weights: n.weights, Historic: n.historic}
		}
		state.Layers[i] = ls
	}

	meta := map[string]string{
		"layers": strconv.Itoa(len(net.layers)),
		"step":   strconv.Itoa(net.step),
	}
	return serialization.Write(w, checkpointKind, state, meta)
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint and returns a
// configured network holding its state. cfg supplies everything that is not
// part of the checkpoint (logger, schedule, RMSProp settings, parallelism).
func LoadCheckpoint(r io.Reader, cfg Config) (*Network, error) {
	var state checkpointState
	if _, err := serialization.Read(r, checkpointKind, &state); err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	if len(state.Layers) != len(state.Structure) {
		return nil, fmt.Errorf("load checkpoint: %w: %d layers for structure %v",
			ErrInvalidStructure, len(state.Layers), state.Structure)
	}

	net := New(cfg)
	if err := net.Setup(state.Structure); err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	for i, ls := range state.Layers {
		l := &net.layers[i]
		if len(ls.Neurons) != l.Size() {
			return nil, fmt.Errorf("load checkpoint: layer %d: %w",
				i, &ShapeError{Op: "load", Want: l.Size(), Got: len(ls.Neurons)})
		}
		l.SetActivation(ParseActivation(ls.Activation))

		for j, ns := range ls.Neurons {
			n := &l.neurons[j]
			if len(ns.Weights) != n.FanIn() || len(ns.Historic) != n.FanIn() {
				return nil, fmt.Errorf("load checkpoint: layer %d neuron %d: %w",
					i, j, &ShapeError{Op: "load", Want: n.FanIn(), Got: len(ns.Weights)})
			}
			n.bias = ns.Bias
			copy(n.weights, ns.Weights)
			copy(n.historic, ns.Historic)
		}
	}

	net.learningRate = state.LearningRate
	net.step = state.Step
	return net, nil
}
