package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/perceptron"
)

// runDemo runs one forward and backward pass on the fixed 4-input example,
// applies one gradient-descent step and verifies the gradients.
func runDemo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stdout)
	lr := fs.Float64("lr", 1, "Learning rate of the update step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sample := dataset.Scenario().Samples[0]
	x, y := sample.X, sample.Y
	w1, w2 := dataset.ScenarioWeights()

	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
	if err != nil {
		return err
	}
	dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
	if err != nil {
		return err
	}
	loss := perceptron.Loss(y, yHat)

	fmt.Fprintf(stdout, "x      = %v\n", mat.Formatted(x.T()))
	fmt.Fprintf(stdout, "y      = %g\n", y)
	fmt.Fprintf(stdout, "z1     = %.6f\n", mat.Formatted(z1.T()))
	fmt.Fprintf(stdout, "z2     = %.6f\n", z2)
	fmt.Fprintf(stdout, "y_hat  = %.6f\n", yHat)
	fmt.Fprintf(stdout, "loss   = %.6f\n", loss)
	fmt.Fprintf(stdout, "dw1    =\n%.6e\n", mat.Formatted(dw1, mat.Prefix("         ")))
	fmt.Fprintf(stdout, "dw2    = %.6e\n", mat.Formatted(dw2.T()))

	report, err := gradcheck.TwoLayer(y, x, w1, w2, gradcheck.Options{})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "gradient check (tolerance %.0e):\n%s", report.Tolerance, report)
	if !report.OK() {
		return errors.New("gradient check failed")
	}

	// w ← w − lr·dw
	next1 := mat.DenseCopyOf(w1)
	next1.Apply(func(i, j int, v float64) float64 { return v - *lr*dw1.At(i, j) }, next1)
	next2 := mat.VecDenseCopyOf(w2)
	next2.AddScaledVec(next2, -*lr, dw2)

	after, _, _, err := perceptron.Forward(x, next1, next2)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "after one step (lr=%g): y_hat=%.6f loss=%.6f\n", *lr, after, perceptron.Loss(y, after))
	return nil
}
