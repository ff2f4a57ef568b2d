package trainer

import (
	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/parallel"
	"github.com/born-ml/backprop/internal/perceptron"
)

// Evaluation is the mean loss and accuracy of a model on a set.
type Evaluation struct {
	Loss     float64
	Accuracy float64 // a sample is correct when ŷ and y fall on the same side of 0.5
	Samples  int
}

// Evaluate runs Predict over every sample of set. Predict must be safe for
// concurrent use, which holds for the models in internal/nn.
func Evaluate(m nn.Model, set *dataset.Set, cfg parallel.Config) (Evaluation, error) {
	if set == nil || set.Len() == 0 {
		return Evaluation{}, errors.New("evaluate: empty set")
	}
	n := set.Len()
	correct := make([]bool, n)

	lossSum, err := parallel.Sum(n, func(i int) (float64, error) {
		s := set.Samples[i]
		yHat, err := m.Predict(s.X)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		correct[i] = (yHat >= 0.5) == (s.Y >= 0.5)
		return perceptron.Loss(s.Y, yHat), nil
	}, cfg)
	if err != nil {
		return Evaluation{}, err
	}

	hits := 0
	for _, c := range correct {
		if c {
			hits++
		}
	}
	return Evaluation{
		Loss:     lossSum / float64(n),
		Accuracy: float64(hits) / float64(n),
		Samples:  n,
	}, nil
}
