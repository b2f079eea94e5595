// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the weight update rules and learning-rate schedules
// used by nn.Network.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent
//   - RMSProp: per-weight adaptive rate with an upper bound
//   - Rule interface for custom update rules
//   - Schedules: Constant, InverseDecay, ExponentialDecay
//
// # Basic Usage
//
//	net := nn.New(nn.Config{
//	    LearningRate: 0.05,
//	    Schedule:     optim.ExponentialDecay{Initial: 0.05, Rate: 1e-4},
//	    RMSProp:      optim.RMSPropConfig{Decay: 0.95, MaxRate: 1},
//	})
//
// BackPropagate applies SGD and then the schedule; BackPropagateRMS applies
// RMSProp and leaves the rate alone. Any Rule can be used with
// Network.BackPropagateWith.
package optim
