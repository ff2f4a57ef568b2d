// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides trainable models built on the perceptron passes.
//
// # Overview
//
// This package contains:
//   - Model interface: Predict, Backprop, Parameters
//   - Parameter: weight storage with an attached gradient
//   - TwoLayer: the two-layer sigmoid perceptron
//   - Sequential / NewMLP: deeper stacks of dense layers
//   - Build: a model from a config section
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
//	    model := nn.NewTwoLayer(4, 5, rand.New(rand.NewSource(1)))
//	    optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.5})
//
//	    for _, s := range samples {
//	        optimizer.ZeroGrad()
//	        if _, err := model.Backprop(s.X, s.Y); err != nil {
//	            log.Fatal(err)
//	        }
//	        optimizer.Step()
//	    }
//	}
//
// Backprop stores ∂L/∂θ on every Parameter; the optimizer reads it from
// there and updates the weights in place.
package nn
