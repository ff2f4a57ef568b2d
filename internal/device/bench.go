package device

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Benchmark is the result of BenchmarkMatMul.
type Benchmark struct {
	Size    int
	Warmup  int
	Elapsed time.Duration // one size×size product after warm-up
	GFLOPS  float64
}

// String renders the benchmark as key=value pairs.
func (b Benchmark) String() string {
	return fmt.Sprintf("device=cpu size=%d warmup=%d elapsed=%s gflops=%.2f",
		b.Size, b.Warmup, b.Elapsed, b.GFLOPS)
}

// BenchmarkMatMul times one product of two size×size uniform random
// matrices on the CPU, after warmup products of 64×64 matrices. The inputs
// are drawn from seed, so repeated calls multiply the same matrices.
func BenchmarkMatMul(size, warmup int, seed int64) (Benchmark, error) {
	if size <= 0 {
		return Benchmark{}, errors.Errorf("benchmark: size must be > 0 (got %d)", size)
	}
	if warmup < 0 {
		return Benchmark{}, errors.Errorf("benchmark: warmup must be >= 0 (got %d)", warmup)
	}
	//nolint:gosec // benchmark data, not security-critical
	rng := rand.New(rand.NewSource(seed))
	a := randomDense(size, rng)
	b := randomDense(size, rng)

	if warmup > 0 {
		wa, wb := randomDense(64, rng), randomDense(64, rng)
		var w mat.Dense
		for i := 0; i < warmup; i++ {
			w.Mul(wa, wb)
		}
	}

	var c mat.Dense
	start := time.Now()
	c.Mul(a, b)
	elapsed := time.Since(start)

	res := Benchmark{Size: size, Warmup: warmup, Elapsed: elapsed}
	if elapsed > 0 {
		n := float64(size)
		res.GFLOPS = 2 * n * n * n / elapsed.Seconds() / 1e9
	}
	return res, nil
}

func randomDense(n int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(n, n, data)
}
