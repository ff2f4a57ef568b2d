package gradcheck

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/perceptron"
)

func TestNumericalQuadratic(t *testing.T) {
	// f(p) = p0² + 3·p0·p1, ∇f = (2p0 + 3p1, 3p0)
	f := func(p []float64) float64 { return p[0]*p[0] + 3*p[0]*p[1] }
	params := []float64{1.5, -2}

	grad := Numerical(f, params, DefaultStep)
	require.Len(t, grad, 2)
	assert.InDelta(t, -3.0, grad[0], 1e-6)
	assert.InDelta(t, 4.5, grad[1], 1e-6)
	assert.Equal(t, []float64{1.5, -2}, params, "params must not be modified")
}

func TestCompareFindsWorstEntry(t *testing.T) {
	e := compare("w", []float64{1, 2, 3}, []float64{1, 2.5, 2.9})
	assert.Equal(t, 1, e.WorstIndex)
	assert.InDelta(t, 0.5, e.MaxAbsDiff, 1e-12)
}

func TestReportDetectsWrongGradient(t *testing.T) {
	r := &Report{
		Tolerance: 1e-4,
		Entries: []Entry{
			compare("good", []float64{0.1}, []float64{0.1}),
			compare("bad", []float64{0.1}, []float64{0.2}),
		},
	}
	assert.False(t, r.OK())
	assert.InDelta(t, 0.1, r.MaxAbsDiff(), 1e-12)
	assert.True(t, strings.Contains(r.String(), "FAIL"))
}

func TestReportFailsOnNaN(t *testing.T) {
	e := compare("w", []float64{0.1, 0.2, 0.3}, []float64{0.1, math.NaN(), 0.3})
	assert.True(t, math.IsNaN(e.MaxAbsDiff))
	assert.Equal(t, 1, e.WorstIndex)

	r := &Report{
		Tolerance: 1e-4,
		Entries: []Entry{
			e,
			compare("good", []float64{0.1}, []float64{0.1}),
		},
	}
	assert.False(t, r.OK())
	assert.True(t, math.IsNaN(r.MaxAbsDiff()))
	assert.Contains(t, r.String(), "FAIL")
}

func TestTwoLayerPasses(t *testing.T) {
	x := mat.NewVecDense(3, []float64{0.2, -0.4, 0.9})
	w1 := mat.NewDense(3, 2, []float64{0.1, -0.3, 0.5, 0.2, -0.7, 0.4})
	w2 := mat.NewVecDense(2, []float64{0.6, -0.8})

	report, err := TwoLayer(0, x, w1, w2, Options{})
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "dw1", report.Entries[0].Name)
	assert.Len(t, report.Entries[0].Analytic, 6)
	assert.Len(t, report.Entries[1].Numeric, 2)
	assert.True(t, report.OK(), report.String())
	assert.False(t, math.IsNaN(report.MaxAbsDiff()))
}

func TestTwoLayerShapeError(t *testing.T) {
	x := mat.NewVecDense(2, nil)
	w1 := mat.NewDense(3, 2, nil)
	w2 := mat.NewVecDense(2, nil)

	_, err := TwoLayer(1, x, w1, w2, Options{})
	assert.Error(t, err)
}

func TestModelTwoLayer(t *testing.T) {
	x := mat.NewVecDense(3, []float64{0.2, -0.4, 0.9})
	w1 := mat.NewDense(3, 2, []float64{0.1, -0.3, 0.5, 0.2, -0.7, 0.4})
	w2 := mat.NewVecDense(2, []float64{0.6, -0.8})
	m, err := nn.NewTwoLayerFrom(w1, w2)
	require.NoError(t, err)
	before := append([]float64(nil), m.Parameters()[0].Data()...)

	report, err := Model(m, x, 1, Options{})
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "w1", report.Entries[0].Name)
	assert.True(t, report.OK(), report.String())
	assert.Equal(t, before, m.Parameters()[0].Data(), "weights must be restored")

	direct, err := TwoLayer(1, x, w1, w2, Options{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, direct.Entries[0].Numeric, report.Entries[0].Numeric, 1e-12)
}

func TestModelMLP(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, act := range []perceptron.Activation{perceptron.SigmoidActivation, perceptron.TanhActivation} {
		m, err := nn.NewMLP(4, []int{5, 3}, act, rng)
		require.NoError(t, err)
		x := mat.NewVecDense(4, []float64{0.5, -0.3, 0.1, 0.8})

		report, err := Model(m, x, 0, Options{})
		require.NoError(t, err)
		assert.Len(t, report.Entries, 3)
		assert.True(t, report.OK(), "%s\n%s", act, report)
	}
}

func TestModelShapeError(t *testing.T) {
	m := nn.NewTwoLayer(3, 2, rand.New(rand.NewSource(1)))
	_, err := Model(m, mat.NewVecDense(4, nil), 1, Options{})
	assert.Error(t, err)
}
