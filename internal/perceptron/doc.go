// Package perceptron implements the forward and backward pass of a
// single-hidden-layer perceptron by hand, plus a layer-list generalization.
//
// The two-layer functions are written for one fixed architecture: sigmoid
// hidden units, a single sigmoid output and the squared-error loss
// ½(y − ŷ)². Gradients are derived with the chain rule directly; there is
// no automatic differentiation. Array algebra is delegated to gonum.
//
//	yHat, z1, z2, err := perceptron.Forward(x, w1, w2)
//	dw1, dw2, err := perceptron.Backward(y, x, w2, yHat, z1, z2)
//
// Applying w ← w − lr·dw is left to the caller (see internal/optim).
package perceptron
