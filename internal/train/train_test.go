package train

import (
	"context"
	"testing"

	"github.com/born-ml/synapse/internal/dataset"
	"github.com/born-ml/synapse/internal/nn"
	"github.com/born-ml/synapse/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNet(t *testing.T, structure []int, lr float64, seed uint64) *nn.Network {
	t.Helper()
	net := nn.New(nn.Config{LearningRate: lr, Seed: seed})
	require.NoError(t, net.Setup(structure))
	return net
}

func TestRun_XOR(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		net := newNet(t, []int{2, 2, 1}, 0.01, seed)

		history, err := Run(context.Background(), net, XOR(), Config{Epochs: 5000})
		require.NoError(t, err)
		require.Len(t, history, 5000)
		assert.False(t, history[0].Classify)

		if history[len(history)-1].Loss < 0.02 {
			assert.Less(t, history[len(history)-1].Loss, history[0].Loss)
			return
		}
	}
	t.Fatal("XOR loss did not drop below 0.02 for any seed")
}

func TestRun_Classification(t *testing.T) {
	// Two well separated clusters.
	var examples []dataset.Example
	for i := 0; i < 10; i++ {
		x := float64(i) / 10
		examples = append(examples,
			dataset.Example{Input: []float64{x, 0}, Target: []float64{1, 0}},
			dataset.Example{Input: []float64{0, x + 1}, Target: []float64{0, 1}},
		)
	}

	net := newNet(t, []int{2, 4, 2}, 0.01, 3)
	history, err := Run(context.Background(), net, examples, Config{Epochs: 200, Shuffle: true, Seed: 9})
	require.NoError(t, err)

	last := history[len(history)-1]
	assert.True(t, last.Classify)
	assert.GreaterOrEqual(t, last.Accuracy, 0.9)

	eval, err := Evaluate(net, examples)
	require.NoError(t, err)
	assert.True(t, eval.Classify)
	assert.GreaterOrEqual(t, eval.Accuracy, 0.9)
}

func TestRun_SGDDecaysRate(t *testing.T) {
	net := nn.New(nn.Config{LearningRate: 0.1, Schedule: optim.InverseDecay{Factor: 2}, Seed: 1})
	require.NoError(t, net.Setup([]int{2, 1}))

	history, err := Run(context.Background(), net, XOR(), Config{Epochs: 1, Optimizer: OptimizerSGD})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.InDelta(t, 0.1/16, history[0].LearningRate, 1e-15)
	assert.Equal(t, 4, net.Step())
}

func TestRun_OnEpochStops(t *testing.T) {
	net := newNet(t, []int{2, 1}, 0.01, 1)

	var calls int
	history, err := Run(context.Background(), net, XOR(), Config{
		Epochs: 10,
		OnEpoch: func(e Epoch) bool {
			calls++
			return e.Index < 2
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, history, 3)
}

func TestRun_Cancelled(t *testing.T) {
	net := newNet(t, []int{2, 1}, 0.01, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := Run(ctx, net, XOR(), Config{Epochs: 3})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history)
	assert.Equal(t, 0, net.Step())
}

func TestRun_Errors(t *testing.T) {
	net := newNet(t, []int{2, 1}, 0.01, 1)

	_, err := Run(context.Background(), net, XOR(), Config{Optimizer: "adam"})
	assert.ErrorIs(t, err, ErrUnknownOptimizer)

	bad := []dataset.Example{{Input: []float64{1, 2, 3}, Target: []float64{0}}}
	_, err = Run(context.Background(), net, bad, Config{})
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)

	bad = []dataset.Example{{Input: []float64{1, 2}, Target: []float64{0, 1}}}
	_, err = Run(context.Background(), net, bad, Config{})
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Equal(t, 0, net.Step())
}

func TestIsOneHot(t *testing.T) {
	assert.True(t, isOneHot([]float64{0, 1, 0}))
	assert.False(t, isOneHot([]float64{1}))
	assert.False(t, isOneHot([]float64{1, 1}))
	assert.False(t, isOneHot([]float64{0, 0.5}))
	assert.False(t, isOneHot([]float64{0, 0}))
}

func TestSquaredError(t *testing.T) {
	assert.InDelta(t, 2.5, squaredError([]float64{1, 2}, []float64{0, 4}), 1e-15)
	assert.Equal(t, 0.0, squaredError(nil, nil))
}
