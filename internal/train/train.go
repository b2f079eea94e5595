// Package train drives online training of an nn.Network: one forward and one
// backward pass per example, repeated for a number of epochs.
package train

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/synapse/internal/dataset"
	"github.com/born-ml/synapse/internal/nn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Optimizer names accepted by Config.
const (
	OptimizerSGD     = "sgd"
	OptimizerRMSProp = "rmsprop"
)

// ErrUnknownOptimizer is returned for an unsupported Config.Optimizer.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

// Config holds configuration for Run.
type Config struct {
	Epochs    int    // Passes over the examples (default: 1)
	Optimizer string // "sgd" or "rmsprop" (default: "rmsprop")
	Shuffle   bool   // Reorder examples before every epoch
	Seed      uint64 // Shuffle seed

	// OnEpoch is called after every epoch. Returning false stops training.
	OnEpoch func(Epoch) bool
}

// Epoch summarizes one pass over the examples.
type Epoch struct {
	Index        int     // zero-based
	Loss         float64 // mean squared error over the epoch
	Accuracy     float64 // argmax accuracy, only for one-hot targets
	Classify     bool    // Accuracy is meaningful
	LearningRate float64 // base learning rate after the epoch
}

// Run trains net on examples and returns one summary per completed epoch.
//
// The context is checked between examples; on cancellation Run returns the
// epochs completed so far together with ctx.Err().
func Run(ctx context.Context, net *nn.Network, examples []dataset.Example, cfg Config) ([]Epoch, error) {
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.Optimizer == "" {
		cfg.Optimizer = OptimizerRMSProp
	}

	var backward func([]float64) error
	switch cfg.Optimizer {
	case OptimizerSGD, "gd":
		backward = net.BackPropagate
	case OptimizerRMSProp, "rms":
		backward = net.BackPropagateRMS
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, cfg.Optimizer)
	}

	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))

	history := make([]Epoch, 0, cfg.Epochs)
	losses := make([]float64, len(examples))
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if cfg.Shuffle {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var correct int
		classify := len(examples) > 0
		for k, idx := range order {
			if err := ctx.Err(); err != nil {
				return history, err
			}

			ex := examples[idx]
			out, err := net.ForwardPass(ex.Input)
			if err != nil {
				return history, fmt.Errorf("epoch %d example %d: %w", epoch, idx, err)
			}
			if len(ex.Target) != len(out) {
				return history, fmt.Errorf("epoch %d example %d: %w", epoch, idx,
					&nn.ShapeError{Op: "train", Want: len(out), Got: len(ex.Target)})
			}
			losses[k] = squaredError(out, ex.Target)

			classify = classify && isOneHot(ex.Target)
			if classify && floats.MaxIdx(out) == floats.MaxIdx(ex.Target) {
				correct++
			}

			if err := backward(ex.Target); err != nil {
				return history, fmt.Errorf("epoch %d example %d: %w", epoch, idx, err)
			}
		}

		e := Epoch{
			Index:        epoch,
			Classify:     classify,
			LearningRate: net.LearningRate(),
		}
		if len(losses) > 0 {
			e.Loss = stat.Mean(losses, nil)
		}
		if classify {
			e.Accuracy = float64(correct) / float64(len(examples))
		}
		history = append(history, e)

		if cfg.OnEpoch != nil && !cfg.OnEpoch(e) {
			break
		}
	}
	return history, nil
}

// Evaluate runs a forward pass over examples without training and returns
// the mean squared error and, for one-hot targets, the argmax accuracy.
func Evaluate(net *nn.Network, examples []dataset.Example) (Epoch, error) {
	e := Epoch{Classify: len(examples) > 0, LearningRate: net.LearningRate()}
	if len(examples) == 0 {
		return e, nil
	}

	losses := make([]float64, len(examples))
	var correct int
	for i, ex := range examples {
		out, err := net.ForwardPass(ex.Input)
		if err != nil {
			return e, fmt.Errorf("example %d: %w", i, err)
		}
		if len(ex.Target) != len(out) {
			return e, fmt.Errorf("example %d: %w", i,
				&nn.ShapeError{Op: "evaluate", Want: len(out), Got: len(ex.Target)})
		}
		losses[i] = squaredError(out, ex.Target)
		e.Classify = e.Classify && isOneHot(ex.Target)
		if floats.MaxIdx(out) == floats.MaxIdx(ex.Target) {
			correct++
		}
	}

	e.Loss = stat.Mean(losses, nil)
	if e.Classify {
		e.Accuracy = float64(correct) / float64(len(examples))
	}
	return e, nil
}

// squaredError returns the mean of (out[i]-target[i])².
func squaredError(out, target []float64) float64 {
	if len(out) == 0 {
		return 0
	}
	d := make([]float64, len(out))
	floats.SubTo(d, out, target)
	return floats.Dot(d, d) / float64(len(d))
}

// isOneHot reports whether t has at least two entries, all 0 except a single 1.
func isOneHot(t []float64) bool {
	if len(t) < 2 {
		return false
	}
	var ones int
	for _, v := range t {
		switch v {
		case 0:
		case 1:
			ones++
		default:
			return false
		}
	}
	return ones == 1
}

// XOR returns the four examples of the exclusive-or truth table.
func XOR() []dataset.Example {
	return []dataset.Example{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
	}
}
