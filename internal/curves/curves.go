// Package curves renders training histories with gonum/plot.
package curves

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/born-ml/backprop/internal/metrics"
)

// Default image size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Loss builds a plot of training loss per epoch, plus validation loss when
// the history has it.
func Loss(h *metrics.History) (*plot.Plot, error) {
	if h == nil || h.Len() == 0 {
		return nil, errors.New("plot loss: empty history")
	}
	p := newPlot("Loss", "epoch", "½(y − ŷ)²")

	if err := addLine(p, 0, "training loss", h, h.TrainLosses()); err != nil {
		return nil, err
	}
	if h.HasValidation() {
		if err := addLine(p, 1, "validation loss", h, h.ValLosses()); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Accuracy builds a plot of validation accuracy per epoch.
func Accuracy(h *metrics.History) (*plot.Plot, error) {
	if h == nil || !h.HasValidation() {
		return nil, errors.New("plot accuracy: history has no validation")
	}
	acc := make([]float64, h.Len())
	for i, e := range h.Epochs {
		acc[i] = e.ValAccuracy * 100
	}
	p := newPlot("Validation accuracy", "epoch", "%")
	if err := addLine(p, 2, "accuracy %", h, acc); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteSVG renders p as SVG to w.
func WriteSVG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	writer, err := p.WriterTo(width, height, "svg")
	if err != nil {
		return errors.Wrap(err, "render svg")
	}
	_, err = writer.WriteTo(w)
	return errors.Wrap(err, "write svg")
}

// SaveLoss writes the loss plot of h to path. The format follows the file
// extension (.svg, .png, .pdf, ...).
func SaveLoss(path string, h *metrics.History) error {
	p, err := Loss(h)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(DefaultWidth, DefaultHeight, path), "save plot %s", path)
}

// SaveAccuracy writes the validation accuracy plot of h to path.
func SaveAccuracy(path string, h *metrics.History) error {
	p, err := Accuracy(h)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.Save(DefaultWidth, DefaultHeight, path), "save plot %s", path)
}

// AccuracyPath returns the file next to a loss plot that holds the accuracy
// plot: "runs/loss.svg" becomes "runs/loss_accuracy.svg".
func AccuracyPath(lossPath string) string {
	ext := filepath.Ext(lossPath)
	return strings.TrimSuffix(lossPath, ext) + "_accuracy" + ext
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.X.Padding, p.Y.Padding = 0, 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, ix int, name string, h *metrics.History, values []float64) error {
	var pts plotter.XYs
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(h.Epochs[i].Epoch), Y: v})
	}
	if len(pts) == 0 {
		return errors.Errorf("plot %s: no finite values", name)
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "plot %s", name)
	}
	l.Width = vg.Points(2)
	l.Color = plotutil.Color(ix)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}
