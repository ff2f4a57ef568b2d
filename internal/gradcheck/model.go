package gradcheck

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/perceptron"
)

// Model checks the gradients m.Backprop stores on every parameter.
//
// Weights are perturbed in place while the numeric gradient is taken and
// restored before Model returns; m must not be used concurrently.
func Model(m nn.Model, x *mat.VecDense, y float64, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	params := m.Parameters()
	for _, p := range params {
		p.ZeroGrad()
	}
	if _, err := m.Backprop(x, y); err != nil {
		return nil, errors.Wrap(err, "gradcheck")
	}

	report := &Report{Tolerance: opts.Tolerance}
	for _, p := range params {
		if p.Grad() == nil {
			return nil, errors.Errorf("gradcheck: no gradient for %s", p.Name())
		}
		analytic := append([]float64(nil), p.Grad()...)
		saved := append([]float64(nil), p.Data()...)

		var predictErr error
		loss := func(q []float64) float64 {
			copy(p.Data(), q)
			yHat, err := m.Predict(x)
			if err != nil && predictErr == nil {
				predictErr = err
			}
			return perceptron.Loss(y, yHat)
		}
		numeric := Numerical(loss, saved, opts.Step)
		copy(p.Data(), saved)
		if predictErr != nil {
			return nil, errors.Wrap(predictErr, "gradcheck")
		}

		report.Entries = append(report.Entries, compare(p.Name(), analytic, numeric))
	}
	return report, nil
}
