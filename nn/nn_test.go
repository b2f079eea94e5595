// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"bytes"
	"testing"

	"github.com/born-ml/synapse/nn"
	"github.com/born-ml/synapse/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI(t *testing.T) {
	net := nn.New(nn.Config{Seed: 1, Activation: nn.Tanh, Schedule: optim.Constant{}})

	structure, err := nn.ParseStructure("3, 4, 2")
	require.NoError(t, err)
	require.NoError(t, net.Setup(structure))

	out, err := net.ForwardPass([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	require.NoError(t, net.BackPropagate([]float64{0, 1}))
	require.NoError(t, net.BackPropagateWith(optim.NewRMSProp(optim.RMSPropConfig{}), []float64{0, 1}))
	assert.Equal(t, 2, net.Step())
	assert.Equal(t, nn.DefaultLearningRate, net.LearningRate())

	_, err = net.ForwardPass([]float64{1})
	var shapeErr *nn.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)

	var buf bytes.Buffer
	require.NoError(t, net.SaveCheckpoint(&buf))
	restored, err := nn.LoadCheckpoint(&buf, nn.Config{})
	require.NoError(t, err)
	assert.Equal(t, structure, restored.Structure())
	assert.Equal(t, nn.Output, restored.Layer(2).Role())
}

func TestManualBackwardPass(t *testing.T) {
	net := nn.New(nn.Config{Seed: 2})
	require.NoError(t, net.Setup([]int{2, 3, 1}))
	rule, ok := optim.ParseRule("sgd", optim.RMSPropConfig{})
	require.True(t, ok)

	_, err := net.ForwardPass([]float64{1, 0})
	require.NoError(t, err)

	net.ResetDeltas()
	for layer := len(net.Structure()) - 1; layer > 0; layer-- {
		require.NoError(t, net.AccumulateAndUpdate(layer, rule, []float64{1}))
	}
	assert.ErrorIs(t, net.AccumulateAndUpdate(1, rule, nil), nn.ErrPassOrder)
}
