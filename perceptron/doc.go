// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package perceptron provides the hand-derived forward and backward passes of
// a bias-free two-layer sigmoid perceptron trained on squared error.
//
// # Overview
//
// The network is
//
//	z1 = W1ᵀ·x      x1 = σ(z1)
//	z2 = w2·x1      ŷ  = σ(z2)
//	L  = ½(y − ŷ)²
//
// with W1 of shape d_in × d_hid and w2 of length d_hid. Forward returns ŷ and
// the pre-activations; Backward turns them into ∂L/∂W1 and ∂L/∂w2.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//	    "github.com/born-ml/backprop/perceptron"
//	)
//
//	func step(x *mat.VecDense, y float64, w1 *mat.Dense, w2 *mat.VecDense, lr float64) error {
//	    yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
//	    if err != nil {
//	        return err
//	    }
//	    dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
//	    if err != nil {
//	        return err
//	    }
//	    dw1.Scale(-lr, dw1)
//	    w1.Add(w1, dw1)
//	    w2.AddScaledVec(w2, -lr, dw2)
//	    return nil
//	}
//
// # Deeper networks
//
// Network generalizes the same passes to any stack of Layer values with
// sigmoid, tanh, ReLU or identity activations.
//
// # Errors
//
// Every shape problem is reported as an error wrapping ErrShapeMismatch:
//
//	if errors.Is(err, perceptron.ErrShapeMismatch) { ... }
package perceptron
