package nn

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/perceptron"
)

// TwoLayer is the bias-free perceptron x → σ(W1ᵀx) → σ(w2·x1) = ŷ.
//
// Forward and backward passes delegate to perceptron.Forward and
// perceptron.Backward; TwoLayer only owns the weights and their gradients.
type TwoLayer struct {
	w1 *mat.Dense    // [d_in, d_hid]
	w2 *mat.VecDense // [d_hid]

	params []*Parameter
}

// NewTwoLayer creates a two-layer perceptron with Xavier initialized weights.
func NewTwoLayer(dIn, dHid int, rng *rand.Rand) *TwoLayer {
	return newTwoLayer(perceptron.Xavier(dIn, dHid, rng), perceptron.XavierVec(dHid, rng))
}

// NewTwoLayerFrom creates a two-layer perceptron from explicit weights.
// The weights are copied.
func NewTwoLayerFrom(w1 *mat.Dense, w2 *mat.VecDense) (*TwoLayer, error) {
	if w1 == nil || w2 == nil || w1.IsEmpty() || w2.IsEmpty() {
		return nil, errors.Wrap(perceptron.ErrShapeMismatch, "two-layer: empty weights")
	}
	if _, c := w1.Dims(); c != w2.Len() {
		return nil, errors.Wrapf(perceptron.ErrShapeMismatch,
			"two-layer: w1 has %d columns but w2 has length %d", c, w2.Len())
	}
	return newTwoLayer(mat.DenseCopyOf(w1), mat.VecDenseCopyOf(w2)), nil
}

func newTwoLayer(w1 *mat.Dense, w2 *mat.VecDense) *TwoLayer {
	return &TwoLayer{
		w1: w1,
		w2: w2,
		params: []*Parameter{
			NewMatrixParameter("w1", w1),
			NewVectorParameter("w2", w2),
		},
	}
}

// Predict implements Model.
func (m *TwoLayer) Predict(x *mat.VecDense) (float64, error) {
	yHat, _, _, err := perceptron.Forward(x, m.w1, m.w2)
	return yHat, err
}

// Backprop implements Model.
func (m *TwoLayer) Backprop(x *mat.VecDense, y float64) (float64, error) {
	yHat, z1, z2, err := perceptron.Forward(x, m.w1, m.w2)
	if err != nil {
		return 0, err
	}
	dw1, dw2, err := perceptron.Backward(y, x, m.w2, yHat, z1, z2)
	if err != nil {
		return 0, err
	}
	if err := m.params[0].SetGrad(dw1); err != nil {
		return 0, err
	}
	if err := m.params[1].SetGrad(dw2); err != nil {
		return 0, err
	}
	return perceptron.Loss(y, yHat), nil
}

// Parameters implements Model. The order is [w1, w2].
func (m *TwoLayer) Parameters() []*Parameter {
	return m.params
}

// InputSize implements Model.
func (m *TwoLayer) InputSize() int {
	r, _ := m.w1.Dims()
	return r
}

// HiddenSize returns the number of hidden units.
func (m *TwoLayer) HiddenSize() int {
	return m.w2.Len()
}

// Weights returns the live weight matrices. Mutating them changes the model.
func (m *TwoLayer) Weights() (w1 *mat.Dense, w2 *mat.VecDense) {
	return m.w1, m.w2
}
