// Package dataset provides the labeled samples the trainer iterates over.
//
// Every sample pairs an input vector with a scalar target in [0, 1], the
// range of the network's sigmoid output. Sources:
//   - Synthetic: linearly separable Gaussian points
//   - Scenario: the fixed 4-input example
//   - LoadDigits: one-vs-rest targets from IDX (MNIST layout) files
package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/config"
)

// Sample is one (x, y) pair.
type Sample struct {
	X *mat.VecDense
	Y float64
}

// Set is an in-memory list of samples sharing one input width.
type Set struct {
	Name     string
	Features int
	Samples  []Sample
}

// NewSet validates that every sample has the same width and a target in [0, 1].
func NewSet(name string, samples []Sample) (*Set, error) {
	if len(samples) == 0 {
		return nil, errors.Errorf("dataset %s: no samples", name)
	}
	features := 0
	for i, s := range samples {
		if s.X == nil || s.X.IsEmpty() {
			return nil, errors.Errorf("dataset %s: sample %d has no input", name, i)
		}
		if i == 0 {
			features = s.X.Len()
		} else if s.X.Len() != features {
			return nil, errors.Errorf("dataset %s: sample %d has %d features, want %d", name, i, s.X.Len(), features)
		}
		if s.Y < 0 || s.Y > 1 {
			return nil, errors.Errorf("dataset %s: sample %d target %g outside [0, 1]", name, i, s.Y)
		}
	}
	return &Set{Name: name, Features: features, Samples: samples}, nil
}

// Len returns the number of samples.
func (s *Set) Len() int {
	return len(s.Samples)
}

// Positives returns how many samples have target ≥ 0.5.
func (s *Set) Positives() int {
	n := 0
	for _, smp := range s.Samples {
		if smp.Y >= 0.5 {
			n++
		}
	}
	return n
}

// Permutation returns a random visiting order over the samples.
func (s *Set) Permutation(rng *rand.Rand) []int {
	return rng.Perm(len(s.Samples))
}

// Split shuffles the samples and holds out the given fraction for
// validation. A zero fraction returns a nil validation set. Samples are
// shared, not copied.
func (s *Set) Split(fraction float64, rng *rand.Rand) (train, val *Set, err error) {
	if fraction < 0 || fraction >= 1 {
		return nil, nil, errors.Errorf("split %s: fraction %g outside [0, 1)", s.Name, fraction)
	}
	nVal := int(float64(len(s.Samples)) * fraction)
	if fraction > 0 && nVal == 0 {
		nVal = 1
	}
	if nVal >= len(s.Samples) {
		return nil, nil, errors.Errorf("split %s: %d samples leave nothing to train on", s.Name, len(s.Samples))
	}

	order := s.Permutation(rng)
	shuffled := make([]Sample, len(order))
	for i, j := range order {
		shuffled[i] = s.Samples[j]
	}

	train = &Set{Name: s.Name + "/train", Features: s.Features, Samples: shuffled[nVal:]}
	if nVal > 0 {
		val = &Set{Name: s.Name + "/val", Features: s.Features, Samples: shuffled[:nVal]}
	}
	return train, val, nil
}

// Load returns the samples described by cfg.
func Load(cfg config.Data) (*Set, error) {
	switch cfg.Source {
	case config.SourceSynthetic:
		return Synthetic(cfg.Samples, cfg.Features, cfg.Seed)
	case config.SourceIDX:
		return LoadDigits(cfg.Dir, cfg.Digit, true, cfg.MaxSamples)
	}
	return nil, errors.Errorf("unknown data source %q", cfg.Source)
}
