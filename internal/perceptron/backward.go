package perceptron

import (
	"gonum.org/v1/gonum/mat"
)

// Backward computes the gradients of L = ½(y − ŷ)² with respect to w1 and w2.
//
// The chain rule is written out for the fixed topology of Forward (one
// sigmoid hidden layer, sigmoid output, squared error):
//
//	delta2 = (yHat − y)·σ'(z2)          gradient w.r.t. z2
//	x1     = σ(z1)
//	dw2    = delta2·x1
//	delta1 = delta2·w2 ⊙ σ'(z1)         gradient w.r.t. z1
//	dw1    = x ⊗ delta1
//
// yHat, z1 and z2 must come from Forward on the same x and w2. z2 is
// accepted for symmetry with Forward; σ'(z2) is taken from yHat. The
// result is only valid for this architecture.
func Backward(y float64, x, w2 *mat.VecDense, yHat float64, z1 *mat.VecDense, z2 float64) (dw1 *mat.Dense, dw2 *mat.VecDense, err error) {
	if x == nil || w2 == nil || z1 == nil {
		return nil, nil, shapeMismatch("backward", "nil operand")
	}
	if x.IsEmpty() || w2.IsEmpty() || z1.IsEmpty() {
		return nil, nil, shapeMismatch("backward", "empty operand")
	}
	dHid := z1.Len()
	if w2.Len() != dHid {
		return nil, nil, shapeMismatch("backward", "w2 has length %d, z1 has length %d", w2.Len(), dHid)
	}

	delta2 := (yHat - y) * SigmoidGrad(yHat)

	x1 := mat.NewVecDense(dHid, nil)
	SigmoidVec(x1, z1)

	dw2 = mat.NewVecDense(dHid, nil)
	dw2.ScaleVec(delta2, x1)

	delta1 := mat.NewVecDense(dHid, nil)
	for i := 0; i < dHid; i++ {
		delta1.SetVec(i, delta2*w2.AtVec(i)*SigmoidGrad(x1.AtVec(i)))
	}

	dw1 = mat.NewDense(x.Len(), dHid, nil)
	dw1.Outer(1, x, delta1)

	return dw1, dw2, nil
}
