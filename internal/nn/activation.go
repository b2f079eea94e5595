package nn

import (
	"fmt"
	"math"
)

// Activation is the closed set of activation functions a layer can use.
//
// Each variant evaluates to the activated value and the derivative of the
// activation with respect to its input, both at the same pre-activation.
// The zero value is LeakyReLU.
type Activation uint8

// Supported activations.
const (
	LeakyReLU Activation = iota
	ReLU
	Tanh
)

// leakySlope is the LeakyReLU slope for negative inputs.
const leakySlope = 0.01

// Eval applies the activation to x.
//
//	ReLU:      x >= 0 → (x, 1),  else (0, 0)
//	LeakyReLU: x >= 0 → (x, 1),  else (0.01x, 0.01)
//	Tanh:      (tanh x, 1 - tanh²x)
func (a Activation) Eval(x float64) (value, derivative float64) {
	switch a {
	case ReLU:
		if x >= 0 {
			return x, 1
		}
		return 0, 0
	case Tanh:
		t := math.Tanh(x)
		return t, 1 - t*t
	default:
		if x >= 0 {
			return x, 1
		}
		return leakySlope * x, leakySlope
	}
}

// String returns the activation name accepted by ParseActivation.
func (a Activation) String() string {
	switch a {
	case LeakyReLU:
		return "leakyrelu"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("Activation(%d)", uint8(a))
	}
}

// ParseActivation maps "relu" and "tanh" to their variants. Every other name
// selects LeakyReLU.
func ParseActivation(name string) Activation {
	switch name {
	case "relu":
		return ReLU
	case "tanh":
		return Tanh
	default:
		return LeakyReLU
	}
}
