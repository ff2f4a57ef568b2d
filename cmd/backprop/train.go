package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/curves"
	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/trainer"
)

func runTrain(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stdout)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	source := fs.String("source", "", "Override data source (synthetic or idx)")
	dataDir := fs.String("data-dir", "", "Override directory holding IDX files")
	digit := fs.Int("digit", -1, "Override positive digit for idx data")
	epochs := fs.Int("epochs", 0, "Override number of epochs")
	lr := fs.Float64("lr", 0, "Override learning rate")
	seed := fs.Int64("seed", 0, "Override all PRNG seeds")
	plotPath := fs.String("plot", "", "Write the loss curve to this file (.svg, .png, .pdf); accuracy goes next to it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	cfg.ApplyOverrides(config.Overrides{
		Source:       *source,
		DataDir:      *dataDir,
		Digit:        *digit,
		Epochs:       *epochs,
		LearningRate: *lr,
		Seed:         *seed,
		Plot:         *plotPath,
	})
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	set, err := dataset.Load(cfg.Data)
	if err != nil {
		return errors.Wrap(err, "load data")
	}
	//nolint:gosec // data split, not security-critical
	train, val, err := set.Split(cfg.Data.Validation, rand.New(rand.NewSource(cfg.Data.Seed)))
	if err != nil {
		return err
	}
	log.Printf("data=%s samples=%d features=%d positives=%d train=%d val=%d",
		set.Name, set.Len(), set.Features, set.Positives(), train.Len(), lenOf(val))

	model, err := nn.Build(cfg.Model, set.Features)
	if err != nil {
		return err
	}
	log.Printf("model=%s hidden=%v activation=%s parameters=%d",
		cfg.Model.Arch, cfg.Model.Hidden, cfg.Model.Activation, nn.CountParameters(model.Parameters()))

	opt, err := optim.New(cfg.Train.Optimizer, model.Parameters(), cfg.Train.LearningRate, cfg.Train.Momentum)
	if err != nil {
		return err
	}

	history, err := trainer.Run(ctx, model, opt, train, val, trainer.RunConfig{
		Epochs:   cfg.Train.Epochs,
		LogEvery: cfg.Train.LogEvery,
		Shuffle:  true,
		Seed:     cfg.Train.Seed,
		Workers:  cfg.Train.Workers,
	})
	if err != nil {
		return errors.Wrap(err, "training failed")
	}

	last, _ := history.Last()
	best, _ := history.Best()
	fmt.Fprintf(stdout, "final: epoch=%d train_loss=%.6f val_loss=%.6f val_acc=%.4f\n",
		last.Epoch, last.TrainLoss, last.ValLoss, last.ValAccuracy)
	fmt.Fprintf(stdout, "best:  epoch=%d train_loss=%.6f val_loss=%.6f val_acc=%.4f\n",
		best.Epoch, best.TrainLoss, best.ValLoss, best.ValAccuracy)

	if cfg.Output.Plot != "" {
		if err := curves.SaveLoss(cfg.Output.Plot, history); err != nil {
			return err
		}
		log.Printf("plot=%s", cfg.Output.Plot)
		if history.HasValidation() {
			accPath := curves.AccuracyPath(cfg.Output.Plot)
			if err := curves.SaveAccuracy(accPath, history); err != nil {
				return err
			}
			log.Printf("plot=%s", accPath)
		}
	}
	return nil
}

func lenOf(s *dataset.Set) int {
	if s == nil {
		return 0
	}
	return s.Len()
}
