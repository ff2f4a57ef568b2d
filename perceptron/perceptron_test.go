// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package perceptron_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/perceptron"
)

func TestFacadeTwoLayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := mat.NewVecDense(4, []float64{0.01, 0.02, 0.03, 0.04})
	w1 := perceptron.Xavier(4, 5, rng)
	w2 := perceptron.XavierVec(5, rng)

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)
	assert.Equal(t, perceptron.Sigmoid(z2), yHat)

	dw1, dw2, err := perceptron.Backward(1, x, w2, yHat, z1, z2)
	require.NoError(t, err)
	r, c := dw1.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, 5, dw2.Len())
	assert.Greater(t, perceptron.Loss(1, yHat), 0.0)

	_, _, _, err = perceptron.Forward(mat.NewVecDense(3, nil), w1, w2)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))
}

func TestFacadeNetwork(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	act, err := perceptron.ParseActivation("tanh")
	require.NoError(t, err)

	net, err := perceptron.NewNetwork(
		perceptron.Layer{Weights: perceptron.Xavier(3, 4, rng), Activation: act},
		perceptron.Layer{Weights: perceptron.Xavier(4, 1, rng), Activation: perceptron.SigmoidActivation},
	)
	require.NoError(t, err)

	tr, err := net.Forward(mat.NewVecDense(3, []float64{1, 2, 3}))
	require.NoError(t, err)
	out := tr.Output().AtVec(0)
	assert.Greater(t, out, 0.0)
	assert.Less(t, out, 1.0)
}
