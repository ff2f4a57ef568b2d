package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/nn"
)

func runGradcheck(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	fs.SetOutput(stdout)
	arch := fs.String("arch", config.ArchTwoLayer, "Architecture (two-layer or mlp)")
	in := fs.Int("in", 4, "Input size")
	hidden := fs.Int("hidden", 5, "Hidden units per hidden layer")
	depth := fs.Int("depth", 1, "Hidden layers (mlp only)")
	activation := fs.String("activation", "sigmoid", "Hidden activation (mlp only)")
	trials := fs.Int("trials", 5, "Number of random problems")
	seed := fs.Int64("seed", 1, "PRNG seed")
	tol := fs.Float64("tol", gradcheck.DefaultTolerance, "Largest accepted |analytic - numeric|")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in <= 0 || *hidden <= 0 || *depth <= 0 || *trials <= 0 {
		return errors.New("in, hidden, depth and trials must be > 0")
	}

	hiddenSizes := make([]int, *depth)
	for i := range hiddenSizes {
		hiddenSizes[i] = *hidden
	}
	//nolint:gosec // test data, not security-critical
	rng := rand.New(rand.NewSource(*seed))

	failed := 0
	for trial := 0; trial < *trials; trial++ {
		m, err := nn.Build(config.Model{
			Arch:       *arch,
			Hidden:     hiddenSizes,
			Activation: *activation,
			Seed:       rng.Int63(),
		}, *in)
		if err != nil {
			return err
		}
		x := mat.NewVecDense(*in, nil)
		for i := 0; i < *in; i++ {
			x.SetVec(i, rng.NormFloat64()*0.5)
		}
		y := float64(rng.Intn(2))

		report, err := gradcheck.Model(m, x, y, gradcheck.Options{Tolerance: *tol})
		if err != nil {
			return err
		}
		status := "ok"
		if !report.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(stdout, "trial=%d y=%g max_abs_diff=%.3e %s\n", trial, y, report.MaxAbsDiff(), status)
		fmt.Fprint(stdout, report)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d gradient checks failed", failed, *trials)
	}
	return nil
}
