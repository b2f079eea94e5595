package nn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/born-ml/synapse/internal/optim"
	"github.com/born-ml/synapse/internal/parallel"
)

// Default network hyperparameters.
const (
	DefaultLearningRate = 0.01
	DefaultInitialBias  = 0.1
)

// Config holds configuration for a Network.
//
// Zero-valued fields are replaced with defaults by New.
type Config struct {
	LearningRate float64             // Initial learning rate (default: 0.01)
	InitialBias  float64             // Bias of every neuron at construction (default: 0.1)
	Activation   Activation          // Activation of every non-input layer (default: LeakyReLU)
	RMSProp      optim.RMSPropConfig // Decay, epsilon and rate ceiling for BackPropagateRMS
	Schedule     optim.Schedule      // Decay applied after BackPropagate (default: InverseDecay{1.0001})
	Seed         uint64              // Weight initialization seed (0: random)
	Logger       *slog.Logger        // Diagnostics sink (default: discard)
	Parallel     parallel.Config     // Forward-pass parallelism (default: sequential)
}

// Network is a fully-connected feed-forward network trained online.
//
// Lifecycle: New returns an unconfigured network; Setup builds the layers
// exactly once; afterwards ForwardPass and the backward passes may alternate
// any number of times.
//
// A Network is not safe for concurrent use. Passes mutate neurons in place
// and depend on strict layer order: forward in increasing index order,
// backward in decreasing order, because layer i's backward step writes into
// the deltas of layer i-1.
//
// Example:
//
//	net := nn.New(nn.Config{LearningRate: 0.01})
//	if err := net.Setup([]int{2, 2, 1}); err != nil {
//	    return err
//	}
//	out, err := net.ForwardPass([]float64{0, 1})
//	err = net.BackPropagateRMS([]float64{1})
type Network struct {
	layers       []Layer
	learningRate float64
	step         int

	// pending is the layer AccumulateAndUpdate accepts next. Zero means no
	// backward pass is in progress.
	pending int

	bias     float64
	act      Activation
	sgd      *optim.SGD
	rms      *optim.RMSProp
	schedule optim.Schedule
	src      rand.Source
	log      *slog.Logger
	par      parallel.Config
}

// New creates an unconfigured network.
func New(cfg Config) *Network {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = DefaultLearningRate
	}
	if cfg.InitialBias == 0 {
		cfg.InitialBias = DefaultInitialBias
	}
	if cfg.Schedule == nil {
		cfg.Schedule = optim.InverseDecay{Factor: optim.DefaultDecayFactor}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Network{
		learningRate: cfg.LearningRate,
		bias:         cfg.InitialBias,
		act:          cfg.Activation,
		sgd:          optim.NewSGD(),
		rms:          optim.NewRMSProp(cfg.RMSProp),
		schedule:     cfg.Schedule,
		src:          newSource(cfg.Seed),
		log:          cfg.Logger,
		par:          cfg.Parallel,
	}
}

// ValidateStructure checks that structure has at least one entry and only
// positive sizes.
func ValidateStructure(structure []int) error {
	if len(structure) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidStructure)
	}
	for i, size := range structure {
		if size <= 0 {
			return fmt.Errorf("%w: layer %d has size %d", ErrInvalidStructure, i, size)
		}
	}
	return nil
}

// Setup builds the layers described by structure.
//
// structure[0] is the input layer (hidden role, no weights). Every later
// layer is fully connected to the one before it; the last layer gets the
// output role. A network can be set up only once.
func (net *Network) Setup(structure []int) error {
	if len(net.layers) > 0 {
		return ErrAlreadyConfigured
	}
	if err := ValidateStructure(structure); err != nil {
		net.log.Warn("setup rejected", "structure", structure, "error", err)
		return err
	}

	layers := make([]Layer, 0, len(structure))
	layers = append(layers, newLayer(0, structure[0], Hidden, net.bias, net.act))

	for i := 1; i < len(structure); i++ {
		role := Hidden
		if i == len(structure)-1 {
			role = Output
		}
		layer := newLayer(i, structure[i], role, net.bias, net.act)
		layer.wireTo(&layers[i-1], net.src)
		layers = append(layers, layer)
	}

	net.layers = layers
	net.log.Info("network set up", "structure", structure, "activation", net.act.String())
	return nil
}

// ForwardPass copies inputs into the input layer, activates every later
// layer in order and returns the output layer's values.
//
// The input layer takes the values verbatim, no activation is applied to it.
// On a length mismatch nothing is mutated and a *ShapeError is returned.
func (net *Network) ForwardPass(inputs []float64) ([]float64, error) {
	if len(net.layers) == 0 {
		return nil, ErrEmptyNetwork
	}
	in := &net.layers[0]
	if len(inputs) != in.Size() {
		err := &ShapeError{Op: "forward", Want: in.Size(), Got: len(inputs)}
		net.log.Warn("forward pass rejected", "error", err)
		return nil, err
	}

	for i, v := range inputs {
		in.neurons[i].value = v
	}
	net.debugLayer("forward", 0)

	for i := 1; i < len(net.layers); i++ {
		if err := net.layers[i].activateAll(net.layers, net.par); err != nil {
			return nil, fmt.Errorf("forward: layer %d: %w", i, err)
		}
		net.debugLayer("forward", i)
	}

	return net.layers[len(net.layers)-1].values(), nil
}

// BackPropagate runs one plain gradient-descent backward pass toward
// expected, then advances the step counter and decays the learning rate
// with the configured schedule.
func (net *Network) BackPropagate(expected []float64) error {
	if err := net.backward("backprop", net.sgd, expected); err != nil {
		return err
	}
	net.learningRate = net.schedule.Next(net.learningRate, net.step)
	return nil
}

// BackPropagateRMS runs one RMSProp backward pass toward expected and
// advances the step counter. The learning rate is not decayed.
func (net *Network) BackPropagateRMS(expected []float64) error {
	return net.backward("backprop-rms", net.rms, expected)
}

// BackPropagateWith runs one backward pass with an arbitrary rule. The
// learning rate is left unchanged.
func (net *Network) BackPropagateWith(rule optim.Rule, expected []float64) error {
	return net.backward("backprop-"+rule.Name(), rule, expected)
}

func (net *Network) backward(op string, rule optim.Rule, expected []float64) error {
	if len(net.layers) == 0 {
		return ErrEmptyNetwork
	}
	out := len(net.layers) - 1
	if len(expected) != net.layers[out].Size() {
		err := &ShapeError{Op: op, Want: net.layers[out].Size(), Got: len(expected)}
		net.log.Warn("backward pass rejected", "error", err)
		return err
	}

	net.ResetDeltas()
	for i := out; i > 0; i-- {
		if err := net.AccumulateAndUpdate(i, rule, expected); err != nil {
			net.pending = 0
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	net.step++
	return nil
}

// ResetDeltas zeroes the delta of every neuron and arms a backward pass
// starting at the output layer. It must precede the AccumulateAndUpdate calls
// of every pass: a stale delta from the previous step corrupts the gradient.
func (net *Network) ResetDeltas() {
	for i := range net.layers {
		for j := range net.layers[i].neurons {
			net.layers[i].neurons[j].delta = 0
		}
	}
	net.pending = len(net.layers) - 1
}

// AccumulateAndUpdate runs the backward step of one layer: every neuron
// finishes its error signal, accumulates it into the previous layer and
// updates its weights with rule.
//
// Layers must be processed from the output layer down to layer 1, one call
// each, after ResetDeltas; any other order returns ErrPassOrder. targets is
// read only for the output layer and must match its size there.
//
// AccumulateAndUpdate does not advance the step counter; BackPropagate and
// BackPropagateRMS do that once the whole pass completed.
func (net *Network) AccumulateAndUpdate(layer int, rule optim.Rule, targets []float64) error {
	if net.pending == 0 || layer != net.pending {
		return fmt.Errorf("%w: got layer %d, expected %d", ErrPassOrder, layer, net.pending)
	}

	l := &net.layers[layer]
	if layer == len(net.layers)-1 {
		if len(targets) != l.Size() {
			return &ShapeError{Op: "accumulate", Want: l.Size(), Got: len(targets)}
		}
		for j := range l.neurons {
			l.neurons[j].seed(targets[j])
		}
	}

	for j := range l.neurons {
		if _, err := l.neurons[j].backward(net.layers, rule, net.learningRate); err != nil {
			return fmt.Errorf("layer %d neuron %d: %w", layer, j, err)
		}
	}
	net.debugLayer("backward", layer)

	net.pending--
	return nil
}

// SetActivation rebinds the activation of one layer.
func (net *Network) SetActivation(layer int, a Activation) error {
	if layer < 0 || layer >= len(net.layers) {
		return fmt.Errorf("%w: layer %d of %d", ErrLayerIndex, layer, len(net.layers))
	}
	net.layers[layer].SetActivation(a)
	return nil
}

// SetNeuron overwrites the weights and bias of one neuron. len(weights) must
// equal the neuron's fan-in. The historic gradients are reset to 1.0.
func (net *Network) SetNeuron(layer, index int, weights []float64, bias float64) error {
	n, err := net.neuron(layer, index)
	if err != nil {
		return err
	}
	if len(weights) != n.FanIn() {
		return &ShapeError{Op: "set neuron", Want: n.FanIn(), Got: len(weights)}
	}

	copy(n.weights, weights)
	n.historic = Ones(len(weights))
	n.bias = bias
	return nil
}

func (net *Network) neuron(layer, index int) (*Neuron, error) {
	if layer < 0 || layer >= len(net.layers) {
		return nil, fmt.Errorf("%w: layer %d of %d", ErrLayerIndex, layer, len(net.layers))
	}
	l := &net.layers[layer]
	if index < 0 || index >= l.Size() {
		return nil, fmt.Errorf("%w: neuron %d of %d in layer %d", ErrLayerIndex, index, l.Size(), layer)
	}
	return &l.neurons[index], nil
}

// Structure returns the layer sizes, or nil before Setup.
func (net *Network) Structure() []int {
	if len(net.layers) == 0 {
		return nil
	}
	s := make([]int, len(net.layers))
	for i := range net.layers {
		s[i] = net.layers[i].Size()
	}
	return s
}

// Layer returns layer i, or nil when out of range.
func (net *Network) Layer(i int) *Layer {
	if i < 0 || i >= len(net.layers) {
		return nil
	}
	return &net.layers[i]
}

// Step returns the number of completed backward passes.
func (net *Network) Step() int {
	return net.step
}

// LearningRate returns the current base learning rate.
func (net *Network) LearningRate() float64 {
	return net.learningRate
}

// SetLearningRate replaces the base learning rate.
func (net *Network) SetLearningRate(lr float64) {
	net.learningRate = lr
}

// debugLayer writes one line per neuron of layer i at debug level.
func (net *Network) debugLayer(op string, i int) {
	ctx := context.Background()
	if !net.log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l := &net.layers[i]
	for j := range l.neurons {
		n := &l.neurons[j]
		net.log.LogAttrs(ctx, slog.LevelDebug, op,
			slog.Int("layer", i),
			slog.Int("neuron", j),
			slog.String("role", n.role.String()),
			slog.Float64("activation", n.value),
			slog.Float64("error", n.delta),
			slog.Float64("rate", n.effectiveRate),
		)
	}
}
