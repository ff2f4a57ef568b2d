package nn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/perceptron"
)

// Sequential is a stack of bias-free dense layers ending in one output unit.
//
// Each layer's output becomes the next layer's input:
//
//	model, err := nn.NewSequential(
//	    perceptron.Layer{Weights: perceptron.Xavier(784, 32, rng), Activation: perceptron.TanhActivation},
//	    perceptron.Layer{Weights: perceptron.Xavier(32, 1, rng), Activation: perceptron.SigmoidActivation},
//	)
//
// A Sequential with a single sigmoid hidden layer computes the same function
// and gradients as TwoLayer.
type Sequential struct {
	net    *perceptron.Network
	params []*Parameter
	target *mat.VecDense
}

// NewSequential chains layers. The last layer must have exactly one output.
// Layer weights are copied.
func NewSequential(layers ...perceptron.Layer) (*Sequential, error) {
	owned := make([]perceptron.Layer, len(layers))
	for i, l := range layers {
		owned[i] = l
		if l.Weights != nil && !l.Weights.IsEmpty() {
			owned[i].Weights = mat.DenseCopyOf(l.Weights)
		}
	}
	net, err := perceptron.NewNetwork(owned...)
	if err != nil {
		return nil, err
	}
	if out := net.OutputSize(); out != 1 {
		return nil, errors.Wrapf(perceptron.ErrShapeMismatch, "sequential: output size %d, want 1", out)
	}

	params := make([]*Parameter, 0, len(layers))
	for i, l := range net.Layers() {
		params = append(params, NewMatrixParameter(layerName(i), l.Weights))
	}
	return &Sequential{
		net:    net,
		params: params,
		target: mat.NewVecDense(1, nil),
	}, nil
}

// NewMLP builds a Sequential with the given hidden sizes, the hidden
// activation on every hidden layer and a sigmoid output unit.
func NewMLP(dIn int, hidden []int, act perceptron.Activation, rng *rand.Rand) (*Sequential, error) {
	if dIn <= 0 {
		return nil, errors.Errorf("mlp: input size must be > 0 (got %d)", dIn)
	}
	layers := make([]perceptron.Layer, 0, len(hidden)+1)
	in := dIn
	for _, h := range hidden {
		if h <= 0 {
			return nil, errors.Errorf("mlp: hidden sizes must be > 0 (got %v)", hidden)
		}
		layers = append(layers, perceptron.Layer{Weights: perceptron.Xavier(in, h, rng), Activation: act})
		in = h
	}
	layers = append(layers, perceptron.Layer{Weights: perceptron.Xavier(in, 1, rng), Activation: perceptron.SigmoidActivation})
	return NewSequential(layers...)
}

// Predict implements Model.
func (s *Sequential) Predict(x *mat.VecDense) (float64, error) {
	tr, err := s.net.Forward(x)
	if err != nil {
		return 0, err
	}
	return tr.Output().AtVec(0), nil
}

// Backprop implements Model. Not safe for concurrent use.
func (s *Sequential) Backprop(x *mat.VecDense, y float64) (float64, error) {
	tr, err := s.net.Forward(x)
	if err != nil {
		return 0, err
	}
	s.target.SetVec(0, y)
	grads, err := s.net.Backward(s.target, tr)
	if err != nil {
		return 0, err
	}
	for i, g := range grads {
		if err := s.params[i].SetGrad(g); err != nil {
			return 0, err
		}
	}
	return perceptron.Loss(y, tr.Output().AtVec(0)), nil
}

// Parameters implements Model. One parameter per layer, input side first.
func (s *Sequential) Parameters() []*Parameter {
	return s.params
}

// InputSize implements Model.
func (s *Sequential) InputSize() int {
	return s.net.InputSize()
}

// Network returns the underlying layer stack.
func (s *Sequential) Network() *perceptron.Network {
	return s.net
}

func layerName(i int) string {
	return fmt.Sprintf("layer%d.weight", i)
}
