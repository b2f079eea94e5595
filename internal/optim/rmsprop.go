package optim

import "math"

// Default RMSProp hyperparameters.
const (
	DefaultDecay   = 0.9
	DefaultEpsilon = 1e-8
	DefaultMaxRate = 5.0
)

// RMSProp implements RMSProp with a per-weight learning-rate ceiling.
//
// Update rule, per weight:
//
//	rate     = min(lr / (sqrt(h) + eps), maxRate)
//	weight   = weight - rate * gradient
//	h        = decay * h + (1-decay) * gradient²
//
// The rate is computed from the historic value before it absorbs the current
// gradient. maxRate bounds the step of weights whose inputs are rarely active
// (h decays toward zero and lr/sqrt(h) would otherwise explode).
//
// Example:
//
//	rule := optim.NewRMSProp(optim.RMSPropConfig{
//	    Decay:   0.9,
//	    Epsilon: 1e-8,
//	    MaxRate: 5.0,
//	})
type RMSProp struct {
	decay   float64
	eps     float64
	maxRate float64
}

// RMSPropConfig holds configuration for the RMSProp rule.
type RMSPropConfig struct {
	Decay   float64 // Moving average coefficient (default: 0.9)
	Epsilon float64 // Added to sqrt(h) before dividing (default: 1e-8)
	MaxRate float64 // Ceiling for the effective learning rate (default: 5.0)
}

// NewRMSProp creates a new RMSProp rule.
//
// Zero-valued fields in config are replaced with the defaults.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	if config.Decay == 0 {
		config.Decay = DefaultDecay
	}
	if config.Epsilon == 0 {
		config.Epsilon = DefaultEpsilon
	}
	if config.MaxRate == 0 {
		config.MaxRate = DefaultMaxRate
	}

	return &RMSProp{
		decay:   config.Decay,
		eps:     config.Epsilon,
		maxRate: config.MaxRate,
	}
}

// Name returns "rmsprop".
func (r *RMSProp) Name() string {
	return "rmsprop"
}

// Step applies the RMSProp update to every weight and returns the mean
// effective rate.
func (r *RMSProp) Step(weights, historic, grads []float64, lr float64) float64 {
	if len(weights) == 0 {
		return lr
	}

	var total float64
	for i := range weights {
		g := grads[i]

		rate := r.EffectiveRate(historic[i], lr)
		weights[i] -= rate * g
		historic[i] = r.decay*historic[i] + (1.0-r.decay)*g*g

		total += rate
	}
	return total / float64(len(weights))
}

// EffectiveRate returns the clamped learning rate for a weight whose moving
// average of squared gradients is h.
func (r *RMSProp) EffectiveRate(h, lr float64) float64 {
	return math.Min(lr/(math.Sqrt(h)+r.eps), r.maxRate)
}

// Decay returns the moving average coefficient.
func (r *RMSProp) Decay() float64 {
	return r.decay
}

// MaxRate returns the effective learning-rate ceiling.
func (r *RMSProp) MaxRate() float64 {
	return r.maxRate
}
