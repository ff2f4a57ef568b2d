package perceptron_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/perceptron"
)

// scenario is the fixed 4-input, 5-hidden-unit example network.
func scenario() (x *mat.VecDense, w1 *mat.Dense, w2 *mat.VecDense, y float64) {
	x = mat.NewVecDense(4, []float64{0.01, 0.02, 0.03, 0.04})
	w1 = mat.NewDense(4, 5, []float64{
		0.5, -0.2, 0.1, 0.8, -0.6,
		0.3, 0.7, -0.4, 0.2, 0.9,
		-0.8, 0.1, 0.6, -0.3, 0.4,
		0.2, -0.5, 0.3, 0.6, -0.1,
	})
	w2 = mat.NewVecDense(5, []float64{0.4, -0.7, 0.2, 0.9, -0.3})
	return x, w1, w2, 1
}

func randomProblem(rng *rand.Rand, dIn, dHid int) (*mat.VecDense, *mat.Dense, *mat.VecDense) {
	x := mat.NewVecDense(dIn, nil)
	for i := 0; i < dIn; i++ {
		x.SetVec(i, rng.NormFloat64())
	}
	return x, perceptron.Xavier(dIn, dHid, rng), perceptron.XavierVec(dHid, rng)
}

func TestForwardScenario(t *testing.T) {
	x, w1, w2, _ := scenario()

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)

	assert.Greater(t, yHat, 0.0)
	assert.Less(t, yHat, 1.0)
	require.Equal(t, 5, z1.Len())

	// z1[0] = 0.01*0.5 + 0.02*0.3 + 0.03*(-0.8) + 0.04*0.2
	assert.InDelta(t, -0.005, z1.AtVec(0), 1e-15)
	assert.Equal(t, perceptron.Sigmoid(z2), yHat)
}

func TestBackwardScenario(t *testing.T) {
	x, w1, w2, y := scenario()

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)
	dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
	require.NoError(t, err)

	r, c := dw1.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, 5, dw2.Len())

	report, err := gradcheck.TwoLayer(y, x, w1, w2, gradcheck.Options{Tolerance: 1e-4})
	require.NoError(t, err)
	assert.True(t, report.OK(), report.String())
}

func TestBackwardMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shapes := []struct{ dIn, dHid int }{{1, 1}, {3, 2}, {4, 5}, {8, 3}, {2, 16}}

	for _, s := range shapes {
		for _, y := range []float64{0, 1, 0.3} {
			x, w1, w2 := randomProblem(rng, s.dIn, s.dHid)
			x.ScaleVec(0.5, x)

			report, err := gradcheck.TwoLayer(y, x, w1, w2, gradcheck.Options{})
			require.NoError(t, err)
			assert.True(t, report.OK(), "shape %dx%d y=%v\n%s", s.dIn, s.dHid, y, report)
		}
	}
}

func TestForwardOutputInOpenInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		x, w1, w2 := randomProblem(rng, 1+rng.Intn(10), 1+rng.Intn(10))
		x.ScaleVec(100*rng.Float64(), x)

		yHat, _, _, err := perceptron.Forward(x, w1, w2)
		require.NoError(t, err)
		assert.Greater(t, yHat, 0.0)
		assert.Less(t, yHat, 1.0)
	}
}

func TestForwardIsIdempotent(t *testing.T) {
	x, w1, w2, _ := scenario()
	w1Before := mat.DenseCopyOf(w1)

	a, z1a, z2a, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)
	b, z1b, z2b, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, z2a, z2b)
	assert.Equal(t, z1a.RawVector().Data, z1b.RawVector().Data)
	assert.True(t, mat.Equal(w1Before, w1), "Forward mutated w1")
}

func TestBackwardDoesNotMutateInputs(t *testing.T) {
	x, w1, w2, y := scenario()
	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)

	xBefore := mat.VecDenseCopyOf(x)
	w2Before := mat.VecDenseCopyOf(w2)
	z1Before := mat.VecDenseCopyOf(z1)

	_, _, err = perceptron.Backward(y, x, w2, yHat, z1, z2)
	require.NoError(t, err)

	assert.True(t, mat.Equal(xBefore, x))
	assert.True(t, mat.Equal(w2Before, w2))
	assert.True(t, mat.Equal(z1Before, z1))
}

func TestForwardShapeMismatch(t *testing.T) {
	x, w1, w2, _ := scenario()

	tests := []struct {
		name string
		x    *mat.VecDense
		w1   *mat.Dense
		w2   *mat.VecDense
	}{
		{"w1 rows", x, mat.NewDense(3, 5, nil), w2},
		{"w1 cols", x, mat.NewDense(4, 4, nil), w2},
		{"x length", mat.NewVecDense(5, nil), w1, w2},
		{"w2 length", x, w1, mat.NewVecDense(6, nil)},
		{"nil x", nil, w1, w2},
		{"nil w1", x, nil, w2},
		{"empty w2", x, w1, &mat.VecDense{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := perceptron.Forward(tt.x, tt.w1, tt.w2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch), "got %v", err)
		})
	}
}

func TestBackwardShapeMismatch(t *testing.T) {
	x, w1, w2, y := scenario()
	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	require.NoError(t, err)

	_, _, err = perceptron.Backward(y, x, mat.NewVecDense(4, nil), yHat, z1, z2)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))

	_, _, err = perceptron.Backward(y, x, w2, yHat, mat.NewVecDense(3, nil), z2)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))

	_, _, err = perceptron.Backward(y, nil, w2, yHat, z1, z2)
	assert.True(t, errors.Is(err, perceptron.ErrShapeMismatch))
}

func TestGradientDescentReducesLoss(t *testing.T) {
	x, w1, w2, y := scenario()
	w1 = mat.DenseCopyOf(w1)
	w2 = mat.VecDenseCopyOf(w2)

	first := -1.0
	last := 0.0
	for step := 0; step < 200; step++ {
		yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
		require.NoError(t, err)
		last = perceptron.Loss(y, yHat)
		if first < 0 {
			first = last
		}
		dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
		require.NoError(t, err)

		dw1.Scale(-1, dw1)
		w1.Add(w1, dw1)
		w2.AddScaledVec(w2, -1, dw2)
	}
	assert.Less(t, last, first)
}
