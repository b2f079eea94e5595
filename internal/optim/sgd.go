package optim

import "gonum.org/v1/gonum/floats"

// SGD implements plain stochastic gradient descent.
//
// Update rule:
//
//	weight = weight - lr * gradient
//
// Every call is one online step: there is no momentum and no batching, the
// gradient of a single example is applied immediately.
type SGD struct{}

// NewSGD creates a new SGD rule.
func NewSGD() *SGD {
	return &SGD{}
}

// Name returns "sgd".
func (s *SGD) Name() string {
	return "sgd"
}

// Step applies weights -= lr * grads. historic is not read or written.
func (s *SGD) Step(weights, _, grads []float64, lr float64) float64 {
	if len(weights) == 0 {
		return lr
	}
	floats.AddScaled(weights, -lr, grads)
	return lr
}
