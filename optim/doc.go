// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training the models in
// package nn.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/backprop/nn"
//	    "github.com/born-ml/backprop/optim"
//	)
//
//	func main() {
//	    model := nn.NewTwoLayer(784, 32, rand.New(rand.NewSource(1)))
//	    optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.5})
//
//	    for epoch := range 10 {
//	        for _, s := range samples {
//	            optimizer.ZeroGrad()
//	            if _, err := model.Backprop(s.X, s.Y); err != nil {
//	                log.Fatal(err)
//	            }
//	            optimizer.Step()
//	        }
//	    }
//	}
//
// # Optimizers
//
// SGD applies w ← w − lr·g, or with momentum v ← μ·v + g; w ← w − lr·v:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
// Adam:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
// Optimizers read the gradients that Backprop stored on each Parameter, so a
// parameter without a gradient is left untouched by Step.
package optim
