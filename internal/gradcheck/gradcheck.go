// Package gradcheck compares hand-derived gradients against central finite differences.
package gradcheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/perceptron"
)

// Default settings. A step of 1e-6 keeps central-difference truncation
// error well below the tolerance for sigmoid networks with small weights.
const (
	DefaultStep      = 1e-6
	DefaultTolerance = 1e-4
)

// Options controls a gradient check.
type Options struct {
	Step      float64 // Finite-difference step (default: DefaultStep)
	Tolerance float64 // Largest accepted |analytic − numeric| (default: DefaultTolerance)
}

func (o Options) withDefaults() Options {
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// Entry is the comparison for one parameter tensor, flattened row-major.
type Entry struct {
	Name       string
	Analytic   []float64
	Numeric    []float64
	MaxAbsDiff float64
	WorstIndex int
}

// Report collects the entries of one check.
type Report struct {
	Entries   []Entry
	Tolerance float64
}

// OK reports whether every entry is within tolerance.
func (r *Report) OK() bool {
	return r.MaxAbsDiff() <= r.Tolerance
}

// MaxAbsDiff returns the largest deviation over all entries.
func (r *Report) MaxAbsDiff() float64 {
	worst := 0.0
	for _, e := range r.Entries {
		worst = math.Max(worst, e.MaxAbsDiff)
	}
	return worst
}

// String formats one line per entry.
func (r *Report) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		status := "ok"
		if !(e.MaxAbsDiff <= r.Tolerance) {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%-8s n=%-4d max_abs_diff=%.3e worst=%d %s\n", e.Name, len(e.Analytic), e.MaxAbsDiff, e.WorstIndex, status)
	}
	return b.String()
}

// Numerical returns the central-difference gradient of f at params.
// params is not modified.
func Numerical(f func([]float64) float64, params []float64, step float64) []float64 {
	return fd.Gradient(nil, f, params, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
}

// TwoLayer checks perceptron.Backward against finite differences of
// perceptron.Loss(y, Forward(x, w1, w2)) for every entry of w1 and w2.
func TwoLayer(y float64, x *mat.VecDense, w1 *mat.Dense, w2 *mat.VecDense, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	if err != nil {
		return nil, errors.Wrap(err, "gradcheck")
	}
	dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
	if err != nil {
		return nil, errors.Wrap(err, "gradcheck")
	}

	rows, cols := w1.Dims()
	lossW1 := func(p []float64) float64 {
		out, _, _, _ := perceptron.Forward(x, mat.NewDense(rows, cols, p), w2)
		return perceptron.Loss(y, out)
	}
	lossW2 := func(p []float64) float64 {
		out, _, _, _ := perceptron.Forward(x, w1, mat.NewVecDense(len(p), p))
		return perceptron.Loss(y, out)
	}

	return &Report{
		Tolerance: opts.Tolerance,
		Entries: []Entry{
			compare("dw1", flattenDense(dw1), Numerical(lossW1, flattenDense(w1), opts.Step)),
			compare("dw2", flattenVec(dw2), Numerical(lossW2, flattenVec(w2), opts.Step)),
		},
	}, nil
}

// Network checks perceptron.Network.Backward layer by layer.
func Network(net *perceptron.Network, x, y *mat.VecDense, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	tr, err := net.Forward(x)
	if err != nil {
		return nil, errors.Wrap(err, "gradcheck")
	}
	grads, err := net.Backward(y, tr)
	if err != nil {
		return nil, errors.Wrap(err, "gradcheck")
	}

	layers := net.Layers()
	report := &Report{Tolerance: opts.Tolerance}
	for i := range layers {
		rows, cols := layers[i].Dims()
		loss := func(p []float64) float64 {
			probe := make([]perceptron.Layer, len(layers))
			copy(probe, layers)
			probe[i].Weights = mat.NewDense(rows, cols, p)
			pn, err := perceptron.NewNetwork(probe...)
			if err != nil {
				return math.NaN()
			}
			ptr, err := pn.Forward(x)
			if err != nil {
				return math.NaN()
			}
			l, _ := pn.Loss(y, ptr.Output())
			return l
		}
		name := fmt.Sprintf("layer%d", i)
		report.Entries = append(report.Entries,
			compare(name, flattenDense(grads[i]), Numerical(loss, flattenDense(layers[i].Weights), opts.Step)))
	}
	return report, nil
}

func compare(name string, analytic, numeric []float64) Entry {
	diff := make([]float64, len(analytic))
	floats.SubTo(diff, analytic, numeric)
	worst := 0
	for i, d := range diff {
		diff[i] = math.Abs(d)
		if math.IsNaN(diff[i]) {
			// floats.Max would skip it.
			return Entry{Name: name, Analytic: analytic, Numeric: numeric, MaxAbsDiff: math.NaN(), WorstIndex: i}
		}
		if diff[i] > diff[worst] {
			worst = i
		}
	}
	return Entry{
		Name:       name,
		Analytic:   analytic,
		Numeric:    numeric,
		MaxAbsDiff: floats.Max(diff),
		WorstIndex: worst,
	}
}

func flattenDense(m *mat.Dense) []float64 {
	return mat.DenseCopyOf(m).RawMatrix().Data
}

func flattenVec(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
