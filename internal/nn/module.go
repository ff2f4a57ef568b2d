// Package nn wraps the perceptron passes into trainable models.
//
// This package provides:
//   - Parameter: weight storage with an attached gradient
//   - Model interface: predict, backprop and expose parameters
//   - TwoLayer: the bias-free two-layer sigmoid perceptron
//   - Sequential: a stack of dense layers with a scalar output
//   - Build: constructs a model from a config.Model section
//
// Models own their weights. Optimizers in internal/optim read the gradients
// set by Backprop and update Data() in place.
package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Model is the interface every trainable network implements.
//
// The training loop is:
//
//	for _, s := range samples {
//	    opt.ZeroGrad()
//	    loss, err := model.Backprop(s.X, s.Y)
//	    ...
//	    opt.Step()
//	}
type Model interface {
	// Predict runs a forward pass and returns ŷ in (0, 1).
	Predict(x *mat.VecDense) (float64, error)

	// Backprop runs a forward and backward pass for one sample, stores
	// ∂L/∂θ on every parameter and returns the loss L = ½(y − ŷ)².
	Backprop(x *mat.VecDense, y float64) (float64, error)

	// Parameters returns all trainable parameters in a stable order.
	Parameters() []*Parameter

	// InputSize is the expected length of x.
	InputSize() int
}
