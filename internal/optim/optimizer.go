// Package optim implements the per-weight update rules used during backpropagation.
//
// This package provides:
//   - Rule interface: pluggable per-weight update applied by every neuron
//   - SGD: plain gradient descent
//   - RMSProp: per-weight adaptive learning rate with a hard ceiling
//   - Schedule interface: learning-rate decay between training steps
//
// A neuron computes its error signal and the gradient of every incoming
// weight, then hands the weights, their historic second-moment estimates and
// the gradients to a Rule. Both optimizers share that protocol so the
// gradient-flow code exists exactly once.
//
// Example usage:
//
//	rule := optim.NewRMSProp(optim.RMSPropConfig{Decay: 0.9})
//
//	grads := []float64{0.2, -0.1}
//	rate := rule.Step(weights, historic, grads, 0.01)
package optim

// Rule is the base interface for all weight update rules.
//
// All rules must implement:
//   - Name: Identifier used in logs and checkpoints
//   - Step: Apply the update to a neuron's weights in place
type Rule interface {
	// Name returns the rule identifier ("sgd", "rmsprop").
	Name() string

	// Step updates weights in place from the per-weight gradients.
	//
	// weights, historic and grads must have the same length. historic holds
	// one moving average of squared gradients per weight; rules that do not
	// track it leave it untouched.
	//
	// Returns the mean effective learning rate applied across the weights
	// (lr itself when weights is empty).
	Step(weights, historic, grads []float64, lr float64) float64
}
