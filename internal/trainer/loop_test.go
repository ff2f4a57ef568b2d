package trainer

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/metrics"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/parallel"
)

// constModel predicts a fixed value and reports a fixed loss.
type constModel struct {
	yHat float64
	loss float64
	dIn  int
}

func (c constModel) Predict(*mat.VecDense) (float64, error)           { return c.yHat, nil }
func (c constModel) Backprop(*mat.VecDense, float64) (float64, error) { return c.loss, nil }
func (c constModel) Parameters() []*nn.Parameter                      { return nil }
func (c constModel) InputSize() int                                   { return c.dIn }

func TestRunLearnsSeparableData(t *testing.T) {
	set, err := dataset.Synthetic(200, 3, 7)
	require.NoError(t, err)
	train, val, err := set.Split(0.2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	model := nn.NewTwoLayer(3, 6, rand.New(rand.NewSource(2)))
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.5})

	var seen []metrics.Epoch
	history, err := Run(context.Background(), model, opt, train, val, RunConfig{
		Epochs:  25,
		Shuffle: true,
		Seed:    3,
		OnEpoch: func(e metrics.Epoch) { seen = append(seen, e) },
	})
	require.NoError(t, err)
	require.Equal(t, 25, history.Len())
	assert.Len(t, seen, 25)

	first := history.Epochs[0]
	last, _ := history.Last()
	assert.Less(t, last.TrainLoss, first.TrainLoss)
	assert.False(t, math.IsNaN(last.ValLoss))
	assert.Greater(t, last.ValAccuracy, 0.75)
	assert.Equal(t, 0.5, last.LearningRate)
}

func TestRunSingleSampleMatchesManualDescent(t *testing.T) {
	set := dataset.Scenario()
	w1, w2 := dataset.ScenarioWeights()
	model, err := nn.NewTwoLayerFrom(w1, w2)
	require.NoError(t, err)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1})

	history, err := Run(context.Background(), model, opt, set, nil, RunConfig{Epochs: 50})
	require.NoError(t, err)

	losses := history.TrainLosses()
	for i := 1; i < len(losses); i++ {
		assert.LessOrEqual(t, losses[i], losses[i-1], "epoch %d", i+1)
	}
	assert.False(t, history.HasValidation())
}

func TestRunRejectsMismatchedFeatures(t *testing.T) {
	set, err := dataset.Synthetic(10, 3, 1)
	require.NoError(t, err)
	model := nn.NewTwoLayer(4, 2, rand.New(rand.NewSource(1)))
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})

	_, err = Run(context.Background(), model, opt, set, nil, RunConfig{Epochs: 1})
	assert.ErrorContains(t, err, "features")

	_, err = Run(context.Background(), model, opt, set, nil, RunConfig{})
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	set, err := dataset.Synthetic(10, 2, 1)
	require.NoError(t, err)
	model := nn.NewTwoLayer(2, 2, rand.New(rand.NewSource(1)))
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, model, opt, set, nil, RunConfig{Epochs: 3})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunDetectsDivergence(t *testing.T) {
	set, err := dataset.Synthetic(4, 2, 1)
	require.NoError(t, err)
	model := constModel{yHat: 0.5, loss: math.NaN(), dIn: 2}
	opt := optim.NewSGD(nil, optim.SGDConfig{})

	_, err = Run(context.Background(), model, opt, set, nil, RunConfig{Epochs: 1})
	assert.True(t, errors.Is(err, ErrDiverged))
}

func TestEvaluate(t *testing.T) {
	set, err := dataset.NewSet("tiny", []dataset.Sample{
		{X: mat.NewVecDense(1, []float64{1}), Y: 1},
		{X: mat.NewVecDense(1, []float64{1}), Y: 1},
		{X: mat.NewVecDense(1, []float64{1}), Y: 0},
		{X: mat.NewVecDense(1, []float64{1}), Y: 1},
	})
	require.NoError(t, err)

	res, err := Evaluate(constModel{yHat: 0.75, dIn: 1}, set, parallel.Config{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Samples)
	assert.InDelta(t, 0.75, res.Accuracy, 1e-12)
	// three samples at ½(0.25)², one at ½(0.75)²
	assert.InDelta(t, (3*0.03125+0.28125)/4, res.Loss, 1e-12)

	_, err = Evaluate(constModel{}, nil, parallel.Config{})
	assert.Error(t, err)
}

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	set, err := dataset.Synthetic(300, 4, 9)
	require.NoError(t, err)
	model := nn.NewTwoLayer(4, 3, rand.New(rand.NewSource(4)))

	seq, err := Evaluate(model, set, parallel.Config{})
	require.NoError(t, err)
	par, err := Evaluate(model, set, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16})
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}
