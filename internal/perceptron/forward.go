package perceptron

import (
	"gonum.org/v1/gonum/mat"
)

// Forward runs the two-layer perceptron on input x.
//
//	z1   = w1ᵀ·x        (length d_hid)
//	x1   = σ(z1)
//	z2   = w2·x1        (scalar)
//	yHat = σ(z2)
//
// x has length d_in, w1 is d_in × d_hid and w2 has length d_hid. Any other
// combination fails with ErrShapeMismatch. Inputs are never modified and
// the result depends only on the arguments.
func Forward(x *mat.VecDense, w1 *mat.Dense, w2 *mat.VecDense) (yHat float64, z1 *mat.VecDense, z2 float64, err error) {
	if err := checkForward(x, w1, w2); err != nil {
		return 0, nil, 0, err
	}
	_, dHid := w1.Dims()

	z1 = mat.NewVecDense(dHid, nil)
	z1.MulVec(w1.T(), x)

	x1 := mat.NewVecDense(dHid, nil)
	SigmoidVec(x1, z1)

	z2 = mat.Dot(w2, x1)
	return Sigmoid(z2), z1, z2, nil
}

func checkForward(x *mat.VecDense, w1 *mat.Dense, w2 *mat.VecDense) error {
	if x == nil || w1 == nil || w2 == nil {
		return shapeMismatch("forward", "nil operand")
	}
	if x.IsEmpty() || w1.IsEmpty() || w2.IsEmpty() {
		return shapeMismatch("forward", "empty operand")
	}
	rows, cols := w1.Dims()
	if rows != x.Len() {
		return shapeMismatch("forward", "w1 has %d rows, x has length %d", rows, x.Len())
	}
	if cols != w2.Len() {
		return shapeMismatch("forward", "w1 has %d columns, w2 has length %d", cols, w2.Len())
	}
	return nil
}
