package perceptron_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/perceptron"
)

func TestNetworkMatchesTwoLayer(t *testing.T) {
	x, w1, w2, y := scenario()

	net, err := perceptron.NewNetwork(
		perceptron.Layer{Weights: w1, Activation: perceptron.SigmoidActivation},
		perceptron.Layer{Weights: mat.NewDense(5, 1, mat.VecDenseCopyOf(w2).RawVector().Data), Activation: perceptron.SigmoidActivation},
	)
	require.NoError(t, err)

	tr, err := net.Forward(x)
	require.NoError(t, err)
	grads, err := net.Backward(mat.NewVecDense(1, []float64{y}), tr)
	require.NoError(t, err)

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)
	dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
	require.NoError(t, err)

	assert.InDelta(t, yHat, tr.Output().AtVec(0), 1e-15)
	assert.InDelta(t, z2, tr.Pre[1].AtVec(0), 1e-15)
	assert.True(t, mat.EqualApprox(z1, tr.Pre[0], 1e-15))
	assert.True(t, mat.EqualApprox(dw1, grads[0], 1e-15))
	assert.True(t, mat.EqualApprox(dw2, grads[1].ColView(0), 1e-15))
}

func TestNetworkGradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, act := range []perceptron.Activation{
		perceptron.SigmoidActivation,
		perceptron.TanhActivation,
		perceptron.IdentityActivation,
	} {
		net, err := perceptron.NewNetwork(
			perceptron.Layer{Weights: perceptron.Xavier(4, 6, rng), Activation: act},
			perceptron.Layer{Weights: perceptron.Xavier(6, 3, rng), Activation: act},
			perceptron.Layer{Weights: perceptron.Xavier(3, 2, rng), Activation: perceptron.SigmoidActivation},
		)
		require.NoError(t, err)

		x := mat.NewVecDense(4, []float64{0.3, -0.1, 0.7, 0.2})
		y := mat.NewVecDense(2, []float64{1, 0})

		report, err := gradcheck.Network(net, x, y, gradcheck.Options{})
		require.NoError(t, err)
		assert.Len(t, report.Entries, 3)
		assert.True(t, report.OK(), "%s\n%s", act, report)
	}
}

func TestNewNetworkRejectsBrokenChain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := perceptron.NewNetwork(
		perceptron.Layer{Weights: perceptron.Xavier(4, 6, rng)},
		perceptron.Layer{Weights: perceptron.Xavier(5, 1, rng)},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))

	_, err = perceptron.NewNetwork()
	assert.Error(t, err)
}

func TestNetworkShapeErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := perceptron.NewNetwork(perceptron.Layer{Weights: perceptron.Xavier(3, 2, rng)})
	require.NoError(t, err)

	_, err = net.Forward(mat.NewVecDense(4, nil))
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))

	tr, err := net.Forward(mat.NewVecDense(3, nil))
	require.NoError(t, err)
	_, err = net.Backward(mat.NewVecDense(3, nil), tr)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))

	_, err = net.Backward(mat.NewVecDense(2, nil), &perceptron.Trace{})
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))
}

func TestParseActivation(t *testing.T) {
	for _, a := range []perceptron.Activation{
		perceptron.SigmoidActivation,
		perceptron.TanhActivation,
		perceptron.ReLUActivation,
		perceptron.IdentityActivation,
	} {
		got, err := perceptron.ParseActivation(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := perceptron.ParseActivation("softplus")
	assert.Error(t, err)
}

func TestXavierBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	w := perceptron.Xavier(784, 16, rng)
	r, c := w.Dims()
	require.Equal(t, 784, r)
	require.Equal(t, 16, c)

	bound := math.Sqrt(6.0 / 800)
	assert.LessOrEqual(t, mat.Max(w), bound)
	assert.GreaterOrEqual(t, mat.Min(w), -bound)

	again := perceptron.Xavier(784, 16, rand.New(rand.NewSource(5)))
	assert.True(t, mat.Equal(w, again), "same seed must give same weights")
}
