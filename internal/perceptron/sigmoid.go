package perceptron

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Interior bounds of the open interval (0, 1) in float64.
var (
	sigmoidLow  = math.SmallestNonzeroFloat64
	sigmoidHigh = math.Nextafter(1, 0)
)

// Sigmoid computes the logistic function σ(t) = 1 / (1 + exp(-t)).
//
// The computation branches on the sign of t so that exp is only ever
// evaluated on a non-positive argument and cannot overflow. Results are
// clamped to the nearest representable values inside (0, 1).
func Sigmoid(t float64) float64 {
	var s float64
	if t >= 0 {
		s = 1 / (1 + math.Exp(-t))
	} else {
		e := math.Exp(t)
		s = e / (1 + e)
	}
	switch {
	case s < sigmoidLow:
		return sigmoidLow
	case s > sigmoidHigh:
		return sigmoidHigh
	}
	return s
}

// SigmoidGrad returns σ'(t) given s = σ(t).
//
// The derivative is taken from the forward value so it stays consistent
// with the exact sigmoid used in the forward pass.
func SigmoidGrad(s float64) float64 {
	return s * (1 - s)
}

// SigmoidVec writes σ(src) elementwise into dst.
//
// dst may be src. A dst of any other length is reset and resized to src's
// length, dropping its previous storage.
func SigmoidVec(dst, src *mat.VecDense) {
	n := src.Len()
	if !dst.IsEmpty() && dst.Len() != n {
		dst.Reset()
	}
	if dst.IsEmpty() {
		dst.ReuseAsVec(n)
	}
	for i := 0; i < n; i++ {
		dst.SetVec(i, Sigmoid(src.AtVec(i)))
	}
}
