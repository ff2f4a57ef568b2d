// Package config loads the YAML run configuration for training.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Architectures understood by nn.Build.
const (
	ArchTwoLayer = "two-layer"
	ArchMLP      = "mlp"
)

// Data sources understood by dataset.Load.
const (
	SourceSynthetic = "synthetic"
	SourceIDX       = "idx"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Model  Model  `yaml:"model"`
	Data   Data   `yaml:"data"`
	Train  Train  `yaml:"train"`
	Output Output `yaml:"output"`
}

// Model selects the network architecture.
type Model struct {
	Arch       string `yaml:"arch"`
	Hidden     []int  `yaml:"hidden"`
	Activation string `yaml:"activation"`
	Seed       int64  `yaml:"seed"`
}

// Data selects the training samples.
type Data struct {
	Source     string  `yaml:"source"`
	Dir        string  `yaml:"dir"`
	Digit      int     `yaml:"digit"`
	MaxSamples int     `yaml:"max_samples"`
	Samples    int     `yaml:"samples"`
	Features   int     `yaml:"features"`
	Validation float64 `yaml:"validation"`
	Seed       int64   `yaml:"seed"`
}

// Train holds optimizer and loop settings.
type Train struct {
	Epochs       int     `yaml:"epochs"`
	Optimizer    string  `yaml:"optimizer"`
	LearningRate float64 `yaml:"learning_rate"`
	Momentum     float64 `yaml:"momentum"`
	LogEvery     int     `yaml:"log_every"`
	Workers      int     `yaml:"workers"`
	Seed         int64   `yaml:"seed"`
}

// Output names the optional artifacts of a run.
type Output struct {
	Plot string `yaml:"plot"`
}

// Overrides captures CLI supplied values. Zero values leave the config untouched.
type Overrides struct {
	Source       string
	DataDir      string
	Digit        int // -1 means unset
	Epochs       int
	LearningRate float64
	Seed         int64
	Plot         string
}

// Default returns the configuration used when no file is given: the
// two-layer sigmoid perceptron on a small synthetic problem.
func Default() *Config {
	return &Config{
		Model: Model{
			Arch:       ArchTwoLayer,
			Hidden:     []int{5},
			Activation: "sigmoid",
			Seed:       1234,
		},
		Data: Data{
			Source:     SourceSynthetic,
			Samples:    400,
			Features:   4,
			Validation: 0.2,
			Seed:       1234,
		},
		Train: Train{
			Epochs:       30,
			Optimizer:    "sgd",
			LearningRate: 0.5,
			LogEvery:     5,
			Seed:         1234,
		},
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any set override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Source != "" {
		c.Data.Source = o.Source
	}
	if o.DataDir != "" {
		c.Data.Dir = o.DataDir
	}
	if o.Digit >= 0 {
		c.Data.Digit = o.Digit
	}
	if o.Epochs > 0 {
		c.Train.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.Train.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Model.Seed = o.Seed
		c.Data.Seed = o.Seed
		c.Train.Seed = o.Seed
	}
	if o.Plot != "" {
		c.Output.Plot = o.Plot
	}
}

// Validate verifies the config is runnable and fills soft defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	c.Model.Arch = strings.ToLower(c.Model.Arch)
	switch c.Model.Arch {
	case ArchTwoLayer:
		if len(c.Model.Hidden) != 1 {
			return errors.Errorf("model.hidden must have exactly one entry for %s (got %v)", ArchTwoLayer, c.Model.Hidden)
		}
	case ArchMLP:
		if len(c.Model.Hidden) == 0 {
			return errors.Errorf("model.hidden must not be empty for %s", ArchMLP)
		}
	default:
		return errors.Errorf("unknown model.arch %q", c.Model.Arch)
	}
	for _, h := range c.Model.Hidden {
		if h <= 0 {
			return errors.Errorf("model.hidden sizes must be > 0 (got %v)", c.Model.Hidden)
		}
	}

	switch c.Data.Source {
	case SourceSynthetic:
		if c.Data.Samples <= 1 {
			return errors.Errorf("data.samples must be > 1 (got %d)", c.Data.Samples)
		}
		if c.Data.Features <= 0 {
			return errors.Errorf("data.features must be > 0 (got %d)", c.Data.Features)
		}
	case SourceIDX:
		if c.Data.Dir == "" {
			return errors.New("data.dir is required for idx source")
		}
		if c.Data.Digit < 0 || c.Data.Digit > 9 {
			return errors.Errorf("data.digit must be in [0, 9] (got %d)", c.Data.Digit)
		}
	default:
		return errors.Errorf("unknown data.source %q", c.Data.Source)
	}
	if c.Data.Validation < 0 || c.Data.Validation >= 1 {
		return errors.Errorf("data.validation must be in [0, 1) (got %g)", c.Data.Validation)
	}

	if c.Train.Epochs <= 0 {
		return errors.Errorf("train.epochs must be > 0 (got %d)", c.Train.Epochs)
	}
	if c.Train.LearningRate <= 0 {
		return errors.Errorf("train.learning_rate must be > 0 (got %g)", c.Train.LearningRate)
	}
	if c.Train.Momentum < 0 || c.Train.Momentum >= 1 {
		return errors.Errorf("train.momentum must be in [0, 1) (got %g)", c.Train.Momentum)
	}
	switch c.Train.Optimizer {
	case "", "sgd":
		c.Train.Optimizer = "sgd"
	case "adam":
	default:
		return errors.Errorf("unknown train.optimizer %q", c.Train.Optimizer)
	}
	if c.Train.LogEvery < 0 {
		return errors.Errorf("train.log_every must be >= 0 (got %d)", c.Train.LogEvery)
	}
	return nil
}
