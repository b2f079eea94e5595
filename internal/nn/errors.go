package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrEmptyNetwork      = errors.New("network has no layers")
	ErrUnwiredNeuron     = errors.New("neuron weights do not match its inputs")
	ErrInvalidStructure  = errors.New("invalid network structure")
	ErrAlreadyConfigured = errors.New("network is already set up")
	ErrPassOrder         = errors.New("backward pass step out of order")
	ErrLayerIndex        = errors.New("layer or neuron index out of range")
)

// ShapeError reports a vector whose length does not match the layer it is
// applied to.
type ShapeError struct {
	Op   string // Operation that rejected the vector ("forward", "backward", ...)
	Want int    // Size of the layer
	Got  int    // Length supplied by the caller
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: layer has %d neurons, got %d values", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
