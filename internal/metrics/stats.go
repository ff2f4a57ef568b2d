// Package metrics aggregates training measurements for logging and plotting.
package metrics

import (
	"math"
	"time"
)

// Window accumulates per-sample stats between two log lines.
type Window struct {
	samples  int
	compute  time.Duration
	steps    int
	lossSum  float64
	lastLoss float64
}

// Record adds a new measurement to the window.
func (w *Window) Record(samples int, computeTime time.Duration, loss float64) {
	w.samples += samples
	w.compute += computeTime
	w.steps++
	w.lossSum += loss
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Steps: w.steps}
	if w.compute > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.compute.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepMS = (w.compute.Seconds() * 1000) / float64(w.steps)
		snap.MeanLoss = w.lossSum / float64(w.steps)
	}
	snap.LastLoss = w.lastLoss

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps         int
	SamplesPerSec float64
	AvgStepMS     float64
	MeanLoss      float64
	LastLoss      float64
}

// Epoch summarizes one pass over the training set.
type Epoch struct {
	Epoch        int
	TrainLoss    float64 // mean ½(y − ŷ)² over the epoch
	ValLoss      float64 // NaN when there is no validation set
	ValAccuracy  float64 // fraction of validation samples with round(ŷ) == y
	LearningRate float64
	Duration     time.Duration
}

// History is the ordered list of epoch summaries of a run.
type History struct {
	Epochs []Epoch
}

// Append records the next epoch.
func (h *History) Append(e Epoch) {
	h.Epochs = append(h.Epochs, e)
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.Epochs)
}

// Last returns the most recent epoch, or false if none was recorded.
func (h *History) Last() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Best returns the epoch with the lowest validation loss, falling back to
// training loss when validation was not measured.
func (h *History) Best() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	best := h.Epochs[0]
	for _, e := range h.Epochs[1:] {
		if score(e) < score(best) {
			best = e
		}
	}
	return best, true
}

// TrainLosses returns the training loss per epoch.
func (h *History) TrainLosses() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		out[i] = e.TrainLoss
	}
	return out
}

// ValLosses returns the validation loss per epoch. Entries are NaN where
// validation was not run.
func (h *History) ValLosses() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		out[i] = e.ValLoss
	}
	return out
}

// HasValidation reports whether any epoch carries a validation loss.
func (h *History) HasValidation() bool {
	for _, e := range h.Epochs {
		if !math.IsNaN(e.ValLoss) {
			return true
		}
	}
	return false
}

func score(e Epoch) float64 {
	if math.IsNaN(e.ValLoss) {
		return e.TrainLoss
	}
	return e.ValLoss
}
