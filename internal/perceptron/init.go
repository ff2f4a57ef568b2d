package perceptron

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Xavier returns a fanIn × fanOut weight matrix drawn from the Glorot uniform
// distribution U(-b, b) with b = sqrt(6 / (fanIn + fanOut)).
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	data := xavierData(fanIn*fanOut, fanIn, fanOut, rng)
	return mat.NewDense(fanIn, fanOut, data)
}

// XavierVec returns the weights of a single output unit with fanIn inputs,
// i.e. the w2 vector of Forward.
func XavierVec(fanIn int, rng *rand.Rand) *mat.VecDense {
	return mat.NewVecDense(fanIn, xavierData(fanIn, fanIn, 1, rng))
}

func xavierData(n, fanIn, fanOut int, rng *rand.Rand) []float64 {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	data := make([]float64, n)
	for i := range data {
		//nolint:gosec // weight initialization, not security-critical
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return data
}
