package optim

import "math"

// Schedule decays the learning rate between training steps.
type Schedule interface {
	// Next returns the learning rate to use after step completed backward
	// passes, given the current rate lr.
	Next(lr float64, step int) float64

	// Name returns the schedule name.
	Name() string
}

// Constant keeps the learning rate unchanged.
type Constant struct{}

// Next returns lr.
func (Constant) Next(lr float64, _ int) float64 { return lr }

// Name returns "constant".
func (Constant) Name() string { return "constant" }

// InverseDecay divides the learning rate by Factor after every step.
//
// With Factor = 1.0001 the rate halves roughly every 6930 steps.
type InverseDecay struct {
	Factor float64
}

// DefaultDecayFactor is the per-step divisor used when none is configured.
const DefaultDecayFactor = 1.0001

// Next returns lr / Factor. A Factor <= 0 falls back to DefaultDecayFactor.
func (d InverseDecay) Next(lr float64, _ int) float64 {
	f := d.Factor
	if f <= 0 {
		f = DefaultDecayFactor
	}
	return lr / f
}

// Name returns "inverse".
func (d InverseDecay) Name() string { return "inverse" }

// ExponentialDecay computes Initial * exp(-Rate * step), independent of the
// current rate.
type ExponentialDecay struct {
	Initial float64
	Rate    float64
}

// Next returns Initial * exp(-Rate * step).
func (d ExponentialDecay) Next(_ float64, step int) float64 {
	return d.Initial * math.Exp(-d.Rate*float64(step))
}

// Name returns "exponential".
func (d ExponentialDecay) Name() string { return "exponential" }

// ParseRule returns the rule registered under name ("sgd" or "rmsprop").
// Anything else yields nil, false.
func ParseRule(name string, config RMSPropConfig) (Rule, bool) {
	switch name {
	case "sgd", "gd":
		return NewSGD(), true
	case "rmsprop", "rms":
		return NewRMSProp(config), true
	default:
		return nil, false
	}
}
