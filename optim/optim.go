// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/synapse/internal/optim"
)

// Rule is a per-weight update rule.
type Rule = optim.Rule

// SGD is plain gradient descent.
type SGD = optim.SGD

// NewSGD creates a new SGD rule.
func NewSGD() *SGD {
	return optim.NewSGD()
}

// RMSProp is RMSProp with a per-weight rate ceiling.
type RMSProp = optim.RMSProp

// RMSPropConfig contains configuration for RMSProp.
type RMSPropConfig = optim.RMSPropConfig

// Default RMSProp hyperparameters.
const (
	DefaultDecay   = optim.DefaultDecay
	DefaultEpsilon = optim.DefaultEpsilon
	DefaultMaxRate = optim.DefaultMaxRate
)

// NewRMSProp creates a new RMSProp rule.
//
// Example:
//
//	rule := optim.NewRMSProp(optim.RMSPropConfig{Decay: 0.9, MaxRate: 5})
//	err := net.BackPropagateWith(rule, expected)
func NewRMSProp(config RMSPropConfig) *RMSProp {
	return optim.NewRMSProp(config)
}

// ParseRule returns the rule named "sgd" or "rmsprop".
func ParseRule(name string, config RMSPropConfig) (Rule, bool) {
	return optim.ParseRule(name, config)
}

// Schedules

// Schedule decays the learning rate between steps.
type Schedule = optim.Schedule

// Constant keeps the learning rate unchanged.
type Constant = optim.Constant

// InverseDecay divides the learning rate by Factor after every step.
type InverseDecay = optim.InverseDecay

// ExponentialDecay computes Initial * exp(-Rate * step).
type ExponentialDecay = optim.ExponentialDecay

// DefaultDecayFactor is the InverseDecay factor used by default.
const DefaultDecayFactor = optim.DefaultDecayFactor
