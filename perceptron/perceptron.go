// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package perceptron

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/perceptron"
)

// ErrShapeMismatch is wrapped by every error caused by incompatible shapes.
var ErrShapeMismatch = perceptron.ErrShapeMismatch

// Two-layer passes

// Forward computes ŷ = σ(w2·σ(W1ᵀ·x)) and returns the pre-activations
// needed by Backward.
func Forward(x *mat.VecDense, w1 *mat.Dense, w2 *mat.VecDense) (yHat float64, z1 *mat.VecDense, z2 float64, err error) {
	return perceptron.Forward(x, w1, w2)
}

// Backward returns ∂L/∂W1 (d_in × d_hid) and ∂L/∂w2 (d_hid) for L = ½(y − ŷ)².
func Backward(y float64, x, w2 *mat.VecDense, yHat float64, z1 *mat.VecDense, z2 float64) (dw1 *mat.Dense, dw2 *mat.VecDense, err error) {
	return perceptron.Backward(y, x, w2, yHat, z1, z2)
}

// Loss returns ½(y − ŷ)².
func Loss(y, yHat float64) float64 {
	return perceptron.Loss(y, yHat)
}

// Activation

// Sigmoid returns 1/(1+e^(−t)), always strictly inside (0, 1).
func Sigmoid(t float64) float64 {
	return perceptron.Sigmoid(t)
}

// SigmoidGrad returns σ'(t) given s = σ(t).
func SigmoidGrad(s float64) float64 {
	return perceptron.SigmoidGrad(s)
}

// SigmoidVec applies Sigmoid elementwise from src into dst.
func SigmoidVec(dst, src *mat.VecDense) {
	perceptron.SigmoidVec(dst, src)
}

// Initialization

// Xavier returns a fanIn × fanOut Glorot-uniform weight matrix.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	return perceptron.Xavier(fanIn, fanOut, rng)
}

// XavierVec returns Glorot-uniform weights for a single output unit.
func XavierVec(fanIn int, rng *rand.Rand) *mat.VecDense {
	return perceptron.XavierVec(fanIn, rng)
}

// Networks

// Activation selects a layer nonlinearity.
type Activation = perceptron.Activation

// Supported activations.
const (
	SigmoidActivation  = perceptron.SigmoidActivation
	TanhActivation     = perceptron.TanhActivation
	ReLUActivation     = perceptron.ReLUActivation
	IdentityActivation = perceptron.IdentityActivation
)

// ParseActivation maps a name such as "tanh" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return perceptron.ParseActivation(name)
}

// Layer is one dense, bias-free layer.
type Layer = perceptron.Layer

// Network is an ordered stack of layers.
type Network = perceptron.Network

// Trace holds the intermediate values of a Network forward pass.
type Trace = perceptron.Trace

// NewNetwork validates that the layers chain and returns the network.
//
// Example:
//
//	net, err := perceptron.NewNetwork(
//	    perceptron.Layer{Weights: perceptron.Xavier(4, 5, rng), Activation: perceptron.SigmoidActivation},
//	    perceptron.Layer{Weights: perceptron.Xavier(5, 1, rng), Activation: perceptron.SigmoidActivation},
//	)
func NewNetwork(layers ...Layer) (*Network, error) {
	return perceptron.NewNetwork(layers...)
}
