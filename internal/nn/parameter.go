package nn

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/perceptron"
)

// Parameter represents a trainable weight block of a model.
//
// A Parameter aliases the row-major backing storage of a gonum matrix or
// vector, so optimizers that update Data() in place update the model.
// The gradient is held alongside the data until ZeroGrad is called.
//
// Example:
//
//	w1 := mat.NewDense(4, 5, nil)
//	p := nn.NewMatrixParameter("w1", w1)
//
//	// after a backward pass
//	_ = p.SetGrad(dw1)
//	grad := p.Grad()
type Parameter struct {
	name string    // Parameter name (e.g., "w1", "layer0.weight")
	rows int       // Logical shape, cols is 1 for vectors
	cols int       //
	data []float64 // Aliases the weight storage
	grad []float64 // Gradient (nil until SetGrad)
}

// NewMatrixParameter wraps m. m must be contiguous (stride == cols), which
// holds for any matrix created with mat.NewDense.
func NewMatrixParameter(name string, m *mat.Dense) *Parameter {
	raw := m.RawMatrix()
	if raw.Stride != raw.Cols {
		panic(fmt.Sprintf("nn: parameter %q is not contiguous (stride %d, cols %d)", name, raw.Stride, raw.Cols))
	}
	return &Parameter{
		name: name,
		rows: raw.Rows,
		cols: raw.Cols,
		data: raw.Data[:raw.Rows*raw.Cols],
	}
}

// NewVectorParameter wraps v. v must have unit increment.
func NewVectorParameter(name string, v *mat.VecDense) *Parameter {
	raw := v.RawVector()
	if raw.Inc != 1 {
		panic(fmt.Sprintf("nn: parameter %q has non-unit increment %d", name, raw.Inc))
	}
	return &Parameter{
		name: name,
		rows: raw.N,
		cols: 1,
		data: raw.Data[:raw.N],
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Dims returns the logical shape. Vectors report a single column.
func (p *Parameter) Dims() (rows, cols int) {
	return p.rows, p.cols
}

// Len returns the number of scalar weights.
func (p *Parameter) Len() int {
	return len(p.data)
}

// Data returns the weights in row-major order. Writes go to the model.
func (p *Parameter) Data() []float64 {
	return p.data
}

// Grad returns the gradient in the same layout as Data.
//
// Returns nil if no gradient has been set since the last ZeroGrad.
func (p *Parameter) Grad() []float64 {
	return p.grad
}

// SetGrad copies g into the gradient buffer. g must match the parameter's
// shape; a vector parameter also accepts an n×1 matrix.
func (p *Parameter) SetGrad(g mat.Matrix) error {
	r, c := g.Dims()
	if r != p.rows || c != p.cols {
		return errors.Wrapf(perceptron.ErrShapeMismatch,
			"gradient for %s: got %dx%d, want %dx%d", p.name, r, c, p.rows, p.cols)
	}
	if p.grad == nil {
		p.grad = make([]float64, len(p.data))
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p.grad[i*c+j] = g.At(i, j)
		}
	}
	return nil
}

// ZeroGrad clears the gradient.
//
// This should be called before each training step so gradients from the
// previous sample are not applied twice.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}

// CountParameters returns the total number of scalar weights in params.
func CountParameters(params []*Parameter) int {
	n := 0
	for _, p := range params {
		n += p.Len()
	}
	return n
}
