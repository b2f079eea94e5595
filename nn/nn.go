// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/synapse/internal/nn"
)

// Network is a fully-connected feed-forward network.
type Network = nn.Network

// Config holds configuration for a Network.
type Config = nn.Config

// Layer is one layer of a Network.
type Layer = nn.Layer

// Neuron is one neuron of a Layer.
type Neuron = nn.Neuron

// Ref addresses a neuron by layer and index.
type Ref = nn.Ref

// Role is the hidden or output role of a neuron.
type Role = nn.Role

// Neuron roles.
const (
	Hidden = nn.Hidden
	Output = nn.Output
)

// Default hyperparameters.
const (
	DefaultLearningRate = nn.DefaultLearningRate
	DefaultInitialBias  = nn.DefaultInitialBias
)

// New creates an unconfigured network.
//
// Example:
//
//	net := nn.New(nn.Config{LearningRate: 0.01, Activation: nn.Tanh})
//	err := net.Setup([]int{4, 8, 3})
func New(cfg Config) *Network {
	return nn.New(cfg)
}

// ValidateStructure checks a list of layer sizes.
func ValidateStructure(structure []int) error {
	return nn.ValidateStructure(structure)
}

// ParseStructure parses layer sizes such as "2, 3, 1".
func ParseStructure(s string) ([]int, error) {
	return nn.ParseStructure(s)
}

// LoadCheckpoint restores a network saved with Network.SaveCheckpoint.
func LoadCheckpoint(r io.Reader, cfg Config) (*Network, error) {
	return nn.LoadCheckpoint(r, cfg)
}

// Activations

// Activation selects the activation function of a layer.
type Activation = nn.Activation

// Supported activations.
const (
	LeakyReLU = nn.LeakyReLU
	ReLU      = nn.ReLU
	Tanh      = nn.Tanh
)

// ParseActivation maps "relu" and "tanh" to their variants and anything else
// to LeakyReLU.
func ParseActivation(name string) Activation {
	return nn.ParseActivation(name)
}

// Diagnostics

// Report is a snapshot of a network.
type Report = nn.Report

// LayerReport describes one layer in a Report.
type LayerReport = nn.LayerReport

// NeuronReport describes one neuron in a Report.
type NeuronReport = nn.NeuronReport

// Errors

// ShapeError reports a vector of the wrong length.
type ShapeError = nn.ShapeError

// Errors returned by Network methods.
var (
	ErrShapeMismatch     = nn.ErrShapeMismatch
	ErrEmptyNetwork      = nn.ErrEmptyNetwork
	ErrUnwiredNeuron     = nn.ErrUnwiredNeuron
	ErrInvalidStructure  = nn.ErrInvalidStructure
	ErrAlreadyConfigured = nn.ErrAlreadyConfigured
	ErrPassOrder         = nn.ErrPassOrder
	ErrLayerIndex        = nn.ErrLayerIndex
)
