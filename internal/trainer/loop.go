// Package trainer drives per-sample gradient descent over a dataset.
package trainer

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/metrics"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/parallel"
)

// ErrDiverged is returned when the loss stops being a finite number.
var ErrDiverged = errors.New("training diverged")

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs   int
	LogEvery int  // log a window summary every N samples, 0 logs per epoch only
	Shuffle  bool // visit samples in a fresh random order each epoch
	Seed     int64
	Workers  int // evaluation workers, 0 uses the CPU count

	// OnEpoch, if set, is called after every epoch.
	OnEpoch func(metrics.Epoch)
}

// Run trains m on train for cfg.Epochs epochs, one optimizer step per
// sample, and evaluates on val (which may be nil) after every epoch.
func Run(ctx context.Context, m nn.Model, opt optim.Optimizer, train, val *dataset.Set, cfg RunConfig) (*metrics.History, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if train == nil || train.Len() == 0 {
		return nil, errors.New("trainer: empty training set")
	}
	if train.Features != m.InputSize() {
		return nil, errors.Errorf("trainer: dataset has %d features, model expects %d", train.Features, m.InputSize())
	}

	//nolint:gosec // shuffling, not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed))
	workers := parallel.WithWorkers(cfg.Workers)
	history := &metrics.History{}
	var window metrics.Window
	step := 0

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		start := time.Now()
		order := identity(train.Len())
		if cfg.Shuffle {
			order = train.Permutation(rng)
		}

		lossSum := 0.0
		for _, idx := range order {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			s := train.Samples[idx]

			startCompute := time.Now()
			opt.ZeroGrad()
			loss, err := m.Backprop(s.X, s.Y)
			if err != nil {
				return history, errors.Wrapf(err, "epoch %d sample %d", epoch, idx)
			}
			if math.IsNaN(loss) || math.IsInf(loss, 0) {
				return history, errors.Wrapf(ErrDiverged, "epoch %d sample %d loss=%v", epoch, idx, loss)
			}
			opt.Step()
			window.Record(1, time.Since(startCompute), loss)

			lossSum += loss
			step++
			if cfg.LogEvery > 0 && step%cfg.LogEvery == 0 {
				snap := window.Snapshot()
				log.Printf("epoch=%d step=%d samples_per_sec=%.1f step_ms=%.3f loss=%.6f",
					epoch,
					step,
					snap.SamplesPerSec,
					snap.AvgStepMS,
					snap.MeanLoss,
				)
			}
		}

		e := metrics.Epoch{
			Epoch:        epoch,
			TrainLoss:    lossSum / float64(train.Len()),
			ValLoss:      math.NaN(),
			ValAccuracy:  math.NaN(),
			LearningRate: opt.LR(),
		}
		if val != nil && val.Len() > 0 {
			res, err := Evaluate(m, val, workers)
			if err != nil {
				return history, errors.Wrapf(err, "evaluate epoch %d", epoch)
			}
			e.ValLoss, e.ValAccuracy = res.Loss, res.Accuracy
		}
		e.Duration = time.Since(start)
		history.Append(e)

		log.Printf("epoch=%d train_loss=%.6f val_loss=%.6f val_acc=%.4f elapsed=%s",
			e.Epoch, e.TrainLoss, e.ValLoss, e.ValAccuracy, e.Duration.Round(time.Millisecond))
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(e)
		}
	}
	return history, nil
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
