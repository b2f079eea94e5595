// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a fully-connected feed-forward neural network trained
// online by backpropagation.
//
// # Overview
//
// This package contains:
//   - Network: layers of neurons wired to every neuron of the previous layer
//   - Activations: LeakyReLU (default), ReLU, Tanh
//   - Training: BackPropagate (gradient descent), BackPropagateRMS (RMSProp)
//   - Diagnostics: Report snapshots and slog debug output
//   - Persistence: SaveCheckpoint and LoadCheckpoint
//
// # Basic Usage
//
//	import "github.com/born-ml/synapse/nn"
//
//	func main() {
//	    net := nn.New(nn.Config{LearningRate: 0.01})
//	    if err := net.Setup([]int{2, 2, 1}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for step := 0; step < 10000; step++ {
//	        out, err := net.ForwardPass([]float64{0, 1})
//	        ...
//	        err = net.BackPropagateRMS([]float64{1})
//	    }
//	}
//
// # Training Passes
//
// Every training step is one ForwardPass followed by one backward pass on the
// same example. The backward pass clears all error signals, seeds the output
// layer from the expected values, then walks the layers from the output down.
// Callers that need a custom update rule can drive the same protocol by hand:
//
//	net.ResetDeltas()
//	for layer := len(net.Structure()) - 1; layer > 0; layer-- {
//	    err := net.AccumulateAndUpdate(layer, rule, expected)
//	}
//
// # Errors
//
// Shape problems are returned as *ShapeError values that match
// ErrShapeMismatch with errors.Is. A rejected pass leaves the network
// unchanged and usable.
package nn
