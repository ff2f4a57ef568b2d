package perceptron

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Activation selects the elementwise nonlinearity of a Layer.
type Activation int

// Supported activations.
const (
	SigmoidActivation Activation = iota
	TanhActivation
	ReLUActivation
	IdentityActivation
)

// String returns the configuration name of the activation.
func (a Activation) String() string {
	switch a {
	case SigmoidActivation:
		return "sigmoid"
	case TanhActivation:
		return "tanh"
	case ReLUActivation:
		return "relu"
	case IdentityActivation:
		return "identity"
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// ParseActivation maps a configuration name to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid", "":
		return SigmoidActivation, nil
	case "tanh":
		return TanhActivation, nil
	case "relu":
		return ReLUActivation, nil
	case "identity", "linear":
		return IdentityActivation, nil
	}
	return 0, errors.Errorf("unknown activation %q", name)
}

// Apply evaluates the activation at t.
func (a Activation) Apply(t float64) float64 {
	switch a {
	case TanhActivation:
		return math.Tanh(t)
	case ReLUActivation:
		return math.Max(0, t)
	case IdentityActivation:
		return t
	}
	return Sigmoid(t)
}

// Derivative returns the activation's derivative given its output value.
func (a Activation) Derivative(out float64) float64 {
	switch a {
	case TanhActivation:
		return 1 - out*out
	case ReLUActivation:
		if out > 0 {
			return 1
		}
		return 0
	case IdentityActivation:
		return 1
	}
	return SigmoidGrad(out)
}

// Layer is one step of a Network: z = Weightsᵀ·a followed by the activation.
//
// Weights has shape d_in × d_out, matching w1 of Forward.
type Layer struct {
	Weights    *mat.Dense
	Activation Activation
}

// Dims returns the input and output width of the layer.
func (l Layer) Dims() (in, out int) {
	return l.Weights.Dims()
}

// Network is an ordered list of layers trained against ½‖y − ŷ‖².
//
// Forward accumulates every pre-activation and activation in a Trace;
// Backward walks that trace in reverse. Two sigmoid layers with a single
// output unit compute the same values as Forward and Backward.
type Network struct {
	layers []Layer
}

// NewNetwork validates that consecutive layers chain and returns the network.
func NewNetwork(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, errors.New("network: no layers")
	}
	for i, l := range layers {
		if l.Weights == nil || l.Weights.IsEmpty() {
			return nil, shapeMismatch("network", "layer %d has no weights", i)
		}
		if i == 0 {
			continue
		}
		_, prevOut := layers[i-1].Dims()
		in, _ := l.Dims()
		if in != prevOut {
			return nil, shapeMismatch("network", "layer %d expects %d inputs, layer %d produces %d", i, in, i-1, prevOut)
		}
	}
	return &Network{layers: layers}, nil
}

// Layers returns the layers in evaluation order. The weights are shared, not copied.
func (n *Network) Layers() []Layer {
	return n.layers
}

// InputSize returns d_in of the first layer.
func (n *Network) InputSize() int {
	in, _ := n.layers[0].Dims()
	return in
}

// OutputSize returns d_out of the last layer.
func (n *Network) OutputSize() int {
	_, out := n.layers[len(n.layers)-1].Dims()
	return out
}

// Trace holds the intermediate values of one Network.Forward call.
//
// Pre[i] and Post[i] are the pre-activation and activation of layer i.
type Trace struct {
	Input *mat.VecDense
	Pre   []*mat.VecDense
	Post  []*mat.VecDense
}

// Output returns the activation of the last layer.
func (t *Trace) Output() *mat.VecDense {
	return t.Post[len(t.Post)-1]
}

// Forward evaluates every layer in order.
func (n *Network) Forward(x *mat.VecDense) (*Trace, error) {
	if x == nil || x.IsEmpty() {
		return nil, shapeMismatch("network forward", "empty input")
	}
	if x.Len() != n.InputSize() {
		return nil, shapeMismatch("network forward", "input has length %d, first layer expects %d", x.Len(), n.InputSize())
	}

	tr := &Trace{
		Input: x,
		Pre:   make([]*mat.VecDense, len(n.layers)),
		Post:  make([]*mat.VecDense, len(n.layers)),
	}
	in := x
	for i, l := range n.layers {
		_, out := l.Dims()
		z := mat.NewVecDense(out, nil)
		z.MulVec(l.Weights.T(), in)

		a := mat.NewVecDense(out, nil)
		for j := 0; j < out; j++ {
			a.SetVec(j, l.Activation.Apply(z.AtVec(j)))
		}
		tr.Pre[i], tr.Post[i] = z, a
		in = a
	}
	return tr, nil
}

// Backward returns dL/dW for every layer, in layer order, for the loss ½‖y − ŷ‖².
//
// tr must come from Forward on this network with unchanged weights.
func (n *Network) Backward(y *mat.VecDense, tr *Trace) ([]*mat.Dense, error) {
	if err := n.checkTrace(tr); err != nil {
		return nil, err
	}
	if y == nil || y.Len() != n.OutputSize() {
		return nil, shapeMismatch("network backward", "target length does not match output size %d", n.OutputSize())
	}

	last := len(n.layers) - 1
	out := tr.Post[last]
	delta := mat.NewVecDense(out.Len(), nil)
	for j := 0; j < out.Len(); j++ {
		delta.SetVec(j, (out.AtVec(j)-y.AtVec(j))*n.layers[last].Activation.Derivative(out.AtVec(j)))
	}

	grads := make([]*mat.Dense, len(n.layers))
	for i := last; i >= 0; i-- {
		in := tr.Input
		if i > 0 {
			in = tr.Post[i-1]
		}
		g := mat.NewDense(in.Len(), delta.Len(), nil)
		g.Outer(1, in, delta)
		grads[i] = g

		if i == 0 {
			break
		}
		prev := mat.NewVecDense(in.Len(), nil)
		prev.MulVec(n.layers[i].Weights, delta)
		act := n.layers[i-1].Activation
		for j := 0; j < prev.Len(); j++ {
			prev.SetVec(j, prev.AtVec(j)*act.Derivative(in.AtVec(j)))
		}
		delta = prev
	}
	return grads, nil
}

// Loss returns ½‖y − yHat‖².
func (n *Network) Loss(y, yHat *mat.VecDense) (float64, error) {
	if y == nil || yHat == nil || y.Len() != yHat.Len() {
		return 0, shapeMismatch("network loss", "target and output lengths differ")
	}
	var diff mat.VecDense
	diff.SubVec(y, yHat)
	return 0.5 * mat.Dot(&diff, &diff), nil
}

func (n *Network) checkTrace(tr *Trace) error {
	if tr == nil || tr.Input == nil {
		return shapeMismatch("network backward", "missing trace")
	}
	if len(tr.Pre) != len(n.layers) || len(tr.Post) != len(n.layers) {
		return shapeMismatch("network backward", "trace has %d layers, network has %d", len(tr.Post), len(n.layers))
	}
	if tr.Input.Len() != n.InputSize() {
		return shapeMismatch("network backward", "trace input has length %d, network expects %d", tr.Input.Len(), n.InputSize())
	}
	for i, l := range n.layers {
		_, out := l.Dims()
		if tr.Post[i] == nil || tr.Post[i].Len() != out {
			return shapeMismatch("network backward", "trace layer %d does not have width %d", i, out)
		}
	}
	return nil
}
