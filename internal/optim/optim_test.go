package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/synapse/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSGD_SimpleUpdate tests a single gradient descent step.
func TestSGD_SimpleUpdate(t *testing.T) {
	rule := optim.NewSGD()

	weights := []float64{2.0, -1.0}
	historic := []float64{1.0, 1.0}
	grads := []float64{1.0, -2.0}

	rate := rule.Step(weights, historic, grads, 0.1)

	// w = w - lr * g
	assert.InDelta(t, 1.9, weights[0], 1e-12)
	assert.InDelta(t, -0.8, weights[1], 1e-12)
	assert.Equal(t, 0.1, rate)
	assert.Equal(t, []float64{1.0, 1.0}, historic, "SGD must not touch historic gradients")
}

// TestSGD_Empty tests that an input neuron (no weights) is a no-op.
func TestSGD_Empty(t *testing.T) {
	rule := optim.NewSGD()
	assert.Equal(t, 0.5, rule.Step(nil, nil, nil, 0.5))
}

// TestRMSProp_Defaults tests zero-value config replacement.
func TestRMSProp_Defaults(t *testing.T) {
	rule := optim.NewRMSProp(optim.RMSPropConfig{})

	assert.Equal(t, optim.DefaultDecay, rule.Decay())
	assert.Equal(t, optim.DefaultMaxRate, rule.MaxRate())
	assert.Equal(t, "rmsprop", rule.Name())
}

// TestRMSProp_SingleStep checks the update against a hand computation.
func TestRMSProp_SingleStep(t *testing.T) {
	rule := optim.NewRMSProp(optim.RMSPropConfig{Decay: 0.9})

	weights := []float64{0.5}
	historic := []float64{1.0}
	grads := []float64{0.2}

	rate := rule.Step(weights, historic, grads, 0.01)

	// rate = 0.01 / (sqrt(1) + 1e-8) ≈ 0.01
	// w    = 0.5 - 0.01 * 0.2 = 0.498
	// h    = 0.9 * 1 + 0.1 * 0.04 = 0.904
	assert.InDelta(t, 0.01, rate, 1e-9)
	assert.InDelta(t, 0.498, weights[0], 1e-9)
	assert.InDelta(t, 0.904, historic[0], 1e-12)
}

// TestRMSProp_HistoricRecurrence checks that every update follows
// h' = decay*h + (1-decay)*g² and never goes negative.
func TestRMSProp_HistoricRecurrence(t *testing.T) {
	const decay = 0.9
	rule := optim.NewRMSProp(optim.RMSPropConfig{Decay: decay})

	weights := []float64{0.1, 0.2, 0.3}
	historic := []float64{1.0, 1.0, 1.0}

	gradSeq := [][]float64{
		{0.5, -0.5, 0.0},
		{-3.0, 0.01, 2.0},
		{0.0, 0.0, 0.0},
		{1e-6, -7.5, 0.3},
	}

	for _, grads := range gradSeq {
		prev := append([]float64(nil), historic...)
		rule.Step(weights, historic, grads, 0.01)

		for i := range historic {
			want := decay*prev[i] + (1-decay)*grads[i]*grads[i]
			assert.InDelta(t, want, historic[i], 1e-12)
			assert.GreaterOrEqual(t, historic[i], 0.0)
		}
	}
}

// TestRMSProp_RateCeiling checks the clamp for vanishing historic values.
func TestRMSProp_RateCeiling(t *testing.T) {
	rule := optim.NewRMSProp(optim.RMSPropConfig{})

	for _, h := range []float64{0, 1e-300, 1e-20, 1e-8, 1e-4, 1, 100} {
		for _, lr := range []float64{1e-4, 0.01, 1, 10} {
			rate := rule.EffectiveRate(h, lr)
			assert.LessOrEqual(t, rate, optim.DefaultMaxRate, "h=%g lr=%g", h, lr)
			assert.False(t, math.IsNaN(rate))
		}
	}

	// A zero historic value must not divide by zero.
	assert.Equal(t, optim.DefaultMaxRate, rule.EffectiveRate(0, 0.01))

	weights := []float64{1.0}
	historic := []float64{0.0}
	rate := rule.Step(weights, historic, []float64{1.0}, 0.01)
	assert.Equal(t, optim.DefaultMaxRate, rate)
	assert.InDelta(t, 1.0-optim.DefaultMaxRate, weights[0], 1e-12)
}

// TestSchedules tests the learning-rate schedules.
func TestSchedules(t *testing.T) {
	assert.Equal(t, 0.3, optim.Constant{}.Next(0.3, 100))

	inv := optim.InverseDecay{Factor: 2}
	assert.InDelta(t, 0.5, inv.Next(1.0, 1), 1e-12)

	def := optim.InverseDecay{}
	assert.InDelta(t, 1.0/optim.DefaultDecayFactor, def.Next(1.0, 1), 1e-15)

	exp := optim.ExponentialDecay{Initial: 1.0, Rate: 0.5}
	assert.InDelta(t, 1.0, exp.Next(123, 0), 1e-12)
	assert.InDelta(t, math.Exp(-1), exp.Next(123, 2), 1e-12)
}

// TestParseRule tests rule lookup by name.
func TestParseRule(t *testing.T) {
	r, ok := optim.ParseRule("sgd", optim.RMSPropConfig{})
	require.True(t, ok)
	assert.Equal(t, "sgd", r.Name())

	r, ok = optim.ParseRule("rmsprop", optim.RMSPropConfig{})
	require.True(t, ok)
	assert.Equal(t, "rmsprop", r.Name())

	_, ok = optim.ParseRule("adam", optim.RMSPropConfig{})
	assert.False(t, ok)
}
