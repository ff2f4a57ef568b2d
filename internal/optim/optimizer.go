// Package optim implements optimization algorithms for training the models
// in internal/nn.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradient held by each nn.Parameter and update its
// Data() in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.5})
//
//	for _, s := range samples {
//	    optimizer.ZeroGrad()
//	    loss, err := model.Backprop(s.X, s.Y)
//	    if err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	}
package optim

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - LR / SetLR: Read and change the learning rate (for scheduling)
type Optimizer interface {
	// Step applies the gradient held by every parameter.
	//
	// Parameters without a gradient are skipped.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64

	// SetLR changes the learning rate for subsequent steps.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// New returns the optimizer called name ("sgd" or "adam").
func New(name string, params []*nn.Parameter, lr, momentum float64) (Optimizer, error) {
	switch strings.ToLower(name) {
	case "", "sgd":
		return NewSGD(params, SGDConfig{LR: lr, Momentum: momentum}), nil
	case "adam":
		return NewAdam(params, AdamConfig{LR: lr}), nil
	}
	return nil, errors.Errorf("unknown optimizer %q", name)
}

func zeroGrad(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
