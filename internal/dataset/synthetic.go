package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Synthetic draws n points x ~ N(0, I) in the given number of features and
// labels them 1 when they fall on the positive side of a random hyperplane
// through the origin. A bias-free network can separate them.
func Synthetic(n, features int, seed int64) (*Set, error) {
	if n <= 0 || features <= 0 {
		return nil, errors.Errorf("synthetic: need positive sizes (n=%d, features=%d)", n, features)
	}
	//nolint:gosec // data generation, not security-critical
	rng := rand.New(rand.NewSource(seed))

	normal := make([]float64, features)
	for i := range normal {
		normal[i] = rng.NormFloat64()
	}

	samples := make([]Sample, n)
	for i := range samples {
		x := make([]float64, features)
		for j := range x {
			x[j] = rng.NormFloat64()
		}
		y := 0.0
		if floats.Dot(normal, x) > 0 {
			y = 1
		}
		samples[i] = Sample{X: mat.NewVecDense(features, x), Y: y}
	}
	return NewSet("synthetic", samples)
}

// Scenario returns the single fixed sample x = [0.01, 0.02, 0.03, 0.04], y = 1
// used to demonstrate one forward and backward pass.
func Scenario() *Set {
	return &Set{
		Name:     "scenario",
		Features: 4,
		Samples: []Sample{{
			X: mat.NewVecDense(4, []float64{0.01, 0.02, 0.03, 0.04}),
			Y: 1,
		}},
	}
}

// ScenarioWeights returns the fixed 4×5 w1 and 5-vector w2 paired with Scenario.
func ScenarioWeights() (*mat.Dense, *mat.VecDense) {
	w1 := mat.NewDense(4, 5, []float64{
		0.5, -0.2, 0.1, 0.8, -0.6,
		0.3, 0.7, -0.4, 0.2, 0.9,
		-0.8, 0.1, 0.6, -0.3, 0.4,
		0.2, -0.5, 0.3, 0.6, -0.1,
	})
	w2 := mat.NewVecDense(5, []float64{0.4, -0.7, 0.2, 0.9, -0.3})
	return w1, w2
}
