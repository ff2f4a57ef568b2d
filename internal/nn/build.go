package nn

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/perceptron"
)

// Build constructs the model described by cfg for inputs of length dIn.
// Weights are seeded from cfg.Seed so identical configs give identical models.
func Build(cfg config.Model, dIn int) (Model, error) {
	if dIn <= 0 {
		return nil, errors.Errorf("build model: input size must be > 0 (got %d)", dIn)
	}
	//nolint:gosec // weight initialization, not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed))

	switch cfg.Arch {
	case config.ArchTwoLayer:
		if len(cfg.Hidden) != 1 || cfg.Hidden[0] <= 0 {
			return nil, errors.Errorf("build model: %s needs one positive hidden size (got %v)", cfg.Arch, cfg.Hidden)
		}
		if cfg.Activation != "" && cfg.Activation != perceptron.SigmoidActivation.String() {
			return nil, errors.Errorf("build model: %s is sigmoid only (got %q)", cfg.Arch, cfg.Activation)
		}
		return NewTwoLayer(dIn, cfg.Hidden[0], rng), nil

	case config.ArchMLP:
		act := perceptron.SigmoidActivation
		if cfg.Activation != "" {
			var err error
			if act, err = perceptron.ParseActivation(cfg.Activation); err != nil {
				return nil, errors.Wrap(err, "build model")
			}
		}
		m, err := NewMLP(dIn, cfg.Hidden, act, rng)
		if err != nil {
			return nil, errors.Wrap(err, "build model")
		}
		return m, nil

	default:
		return nil, errors.Errorf("build model: unknown architecture %q", cfg.Arch)
	}
}
