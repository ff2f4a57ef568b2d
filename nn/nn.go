// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/perceptron"
)

// Model is the interface every trainable network implements.
type Model = nn.Model

// Parameter represents a trainable weight block with its gradient.
type Parameter = nn.Parameter

// NewMatrixParameter wraps the storage of m without copying.
func NewMatrixParameter(name string, m *mat.Dense) *Parameter {
	return nn.NewMatrixParameter(name, m)
}

// NewVectorParameter wraps the storage of v without copying.
func NewVectorParameter(name string, v *mat.VecDense) *Parameter {
	return nn.NewVectorParameter(name, v)
}

// CountParameters returns the total number of scalar weights.
func CountParameters(params []*Parameter) int {
	return nn.CountParameters(params)
}

// Models

// TwoLayer is the bias-free two-layer sigmoid perceptron.
type TwoLayer = nn.TwoLayer

// NewTwoLayer creates a two-layer perceptron with Xavier initialization.
//
// Example:
//
//	model := nn.NewTwoLayer(784, 32, rand.New(rand.NewSource(1)))
func NewTwoLayer(dIn, dHid int, rng *rand.Rand) *TwoLayer {
	return nn.NewTwoLayer(dIn, dHid, rng)
}

// NewTwoLayerFrom creates a two-layer perceptron from copies of w1 and w2.
func NewTwoLayerFrom(w1 *mat.Dense, w2 *mat.VecDense) (*TwoLayer, error) {
	return nn.NewTwoLayerFrom(w1, w2)
}

// Sequential is a stack of dense layers ending in one sigmoid unit.
type Sequential = nn.Sequential

// NewSequential chains copies of the given layers.
func NewSequential(layers ...perceptron.Layer) (*Sequential, error) {
	return nn.NewSequential(layers...)
}

// NewMLP builds a Sequential with the given hidden sizes.
//
// Example:
//
//	model, err := nn.NewMLP(784, []int{64, 16}, perceptron.TanhActivation, rng)
func NewMLP(dIn int, hidden []int, act perceptron.Activation, rng *rand.Rand) (*Sequential, error) {
	return nn.NewMLP(dIn, hidden, act, rng)
}

// ModelConfig selects an architecture for Build.
type ModelConfig = config.Model

// Build constructs the model described by cfg for inputs of length dIn.
func Build(cfg ModelConfig, dIn int) (Model, error) {
	return nn.Build(cfg, dIn)
}
