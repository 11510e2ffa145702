package trainer

import (
	"math/rand"
	"testing"

	"github.com/drakos74/perceptron/internal/dataset"
	"github.com/drakos74/perceptron/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrainer(t *testing.T) *Trainer {
	tr, err := New(DefaultSettings(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	return tr
}

type recorder struct {
	events []Event
}

func (r *recorder) Observe(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	tt := make([]EventType, len(r.events))
	for i, e := range r.events {
		tt[i] = e.Type
	}
	return tt
}

func TestNew_InvalidSettings(t *testing.T) {

	tests := map[string]Settings{
		"zero-rate":       {LearningRate: 0, Iterations: 10},
		"negative-rate":   {LearningRate: -0.1, Iterations: 10},
		"zero-iterations": {LearningRate: 0.1, Iterations: 0},
	}

	for name, settings := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(settings, rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, InvalidSettingsErr)
		})
	}
}

func TestNew(t *testing.T) {
	tr := newTrainer(t)
	state := tr.State()
	assert.Equal(t, dataset.Size, len(state.Dataset))
	assert.Equal(t, InputSize, state.Neuron.InputSize())
	assert.Equal(t, 0, state.History.Len())
	assert.False(t, tr.Running())
	assert.Equal(t, DefaultSettings(), tr.Settings())

	s, err := tr.Tick()
	require.NoError(t, err)
	assert.Equal(t, Stop, s)
}

func TestTrainer_RunsToCompletion(t *testing.T) {
	r := &recorder{}
	tr := newTrainer(t).Observe(r)

	session, ok := tr.Start(5)
	require.True(t, ok)
	assert.True(t, session.Running)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 5, session.Total)

	var ticks int
	for {
		s, err := tr.Tick()
		require.NoError(t, err)
		ticks++
		if s == Stop {
			break
		}
	}

	assert.Equal(t, 5, ticks)
	assert.False(t, tr.Running())
	assert.Equal(t, 5, tr.State().History.Len())
	assert.Equal(t, 5, tr.State().Session.Iteration)
	assert.Equal(t, []EventType{
		StartedEvent,
		EpochEvent, EpochEvent, EpochEvent, EpochEvent, EpochEvent,
		FinishedEvent,
	}, r.types())

	costs := tr.State().History.Get()
	for i, e := range r.events[1:6] {
		assert.Equal(t, costs[i], e.Cost)
		assert.Equal(t, i+1, e.Session.Iteration)
	}
}

func TestTrainer_StartUsesConfiguredIterations(t *testing.T) {
	tr := newTrainer(t)
	session, ok := tr.Start(0)
	require.True(t, ok)
	assert.Equal(t, DefaultIterations, session.Total)
}

func TestTrainer_StartWhileRunningIsNoop(t *testing.T) {
	tr := newTrainer(t)
	first, ok := tr.Start(10)
	require.True(t, ok)
	_, err := tr.Tick()
	require.NoError(t, err)

	second, ok := tr.Start(50)
	assert.False(t, ok)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 10, second.Total)
	assert.Equal(t, 1, tr.State().History.Len())
}

func TestTrainer_CancelStopsFurtherEpochs(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(10)
	for i := 0; i < 3; i++ {
		s, err := tr.Tick()
		require.NoError(t, err)
		assert.Equal(t, Continue, s)
	}

	assert.True(t, tr.Cancel())
	assert.False(t, tr.Cancel())

	for i := 0; i < 3; i++ {
		s, err := tr.Tick()
		require.NoError(t, err)
		assert.Equal(t, Stop, s)
	}
	assert.Equal(t, 3, tr.State().History.Len())
	assert.Equal(t, 3, tr.State().Session.Iteration)
	assert.False(t, tr.Running())
}

func TestTrainer_ResumeKeepsHistory(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(10)
	for i := 0; i < 4; i++ {
		_, err := tr.Tick()
		require.NoError(t, err)
	}
	tr.Cancel()
	before := tr.State().History.Get()

	_, ok := tr.Start(10)
	require.True(t, ok)
	for tr.Running() {
		_, err := tr.Tick()
		require.NoError(t, err)
	}

	costs := tr.State().History.Get()
	assert.Equal(t, 10, len(costs))
	assert.Equal(t, before, costs[:4])
}

func TestTrainer_StartAfterFinishEndsImmediately(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(3)
	for tr.Running() {
		_, err := tr.Tick()
		require.NoError(t, err)
	}

	_, ok := tr.Start(3)
	require.True(t, ok)
	s, err := tr.Tick()
	require.NoError(t, err)
	assert.Equal(t, Stop, s)
	assert.Equal(t, 3, tr.State().History.Len())

	// a longer session continues from where the last one stopped
	tr.Start(5)
	for tr.Running() {
		_, err := tr.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, 5, tr.State().History.Len())
}

func TestTrainer_ConfigureAppliesOnNextEpoch(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(10)
	_, err := tr.Tick()
	require.NoError(t, err)

	settings := Settings{LearningRate: 0.5, Activation: model.Tanh, Iterations: 10}
	require.NoError(t, tr.Configure(settings))

	// the running epoch keeps its settings until the next tick
	assert.Equal(t, 0.1, tr.State().Neuron.Rate())
	assert.Equal(t, model.Sigmoid, tr.State().Neuron.Activation())
	assert.Equal(t, settings, tr.Settings())

	_, err = tr.Tick()
	require.NoError(t, err)
	assert.Equal(t, 0.5, tr.State().Neuron.Rate())
	assert.Equal(t, model.Tanh, tr.State().Neuron.Activation())
	assert.Equal(t, settings, tr.State().Settings)
}

func TestTrainer_ConfigureWhenIdle(t *testing.T) {
	tr := newTrainer(t)
	settings := Settings{LearningRate: 0.3, Activation: model.ReLU, Iterations: 20}
	require.NoError(t, tr.Configure(settings))
	assert.Equal(t, 0.3, tr.State().Neuron.Rate())
	assert.Equal(t, model.ReLU, tr.State().Neuron.Activation())

	err := tr.Configure(Settings{LearningRate: -1, Iterations: 20})
	assert.ErrorIs(t, err, InvalidSettingsErr)
	assert.Equal(t, settings, tr.Settings())
}

func TestTrainer_CancelAppliesPendingSettings(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(10)
	settings := Settings{LearningRate: 0.7, Activation: model.Step, Iterations: 10}
	require.NoError(t, tr.Configure(settings))
	tr.Cancel()
	assert.Equal(t, 0.7, tr.State().Neuron.Rate())
	assert.Equal(t, model.Step, tr.State().Neuron.Activation())
}

func TestTrainer_Reset(t *testing.T) {
	r := &recorder{}
	tr := newTrainer(t).Observe(r)
	require.NoError(t, tr.Configure(Settings{LearningRate: 0.4, Activation: model.Tanh, Iterations: 10}))
	tr.Start(10)
	for i := 0; i < 3; i++ {
		_, err := tr.Tick()
		require.NoError(t, err)
	}
	before := tr.State().Neuron

	tr.Reset()

	state := tr.State()
	assert.False(t, tr.Running())
	assert.Equal(t, 0, state.History.Len())
	assert.Equal(t, Session{}, state.Session)
	assert.NotSame(t, before, state.Neuron)
	assert.Equal(t, 0.4, state.Neuron.Rate())
	assert.Equal(t, model.Tanh, state.Neuron.Activation())
	assert.Equal(t, ResetEvent, r.events[len(r.events)-1].Type)

	s, err := tr.Tick()
	require.NoError(t, err)
	assert.Equal(t, Stop, s)
}

func TestTrainer_RegenerateCancelsSession(t *testing.T) {
	var generated int
	r := &recorder{}
	tr := newTrainer(t).
		WithGenerator(func(rng *rand.Rand) model.Dataset {
			generated++
			return dataset.Generate(rng)
		}).
		Observe(r)
	require.Equal(t, 1, generated)

	tr.Start(10)
	_, err := tr.Tick()
	require.NoError(t, err)
	before := tr.State().Dataset

	tr.Regenerate()

	assert.Equal(t, 2, generated)
	assert.False(t, tr.Running())
	assert.NotEqual(t, before, tr.State().Dataset)
	assert.Equal(t, dataset.Size, len(tr.State().Dataset))
	assert.Equal(t, []EventType{StartedEvent, EpochEvent, CancelledEvent, RegeneratedEvent}, r.types())
}

func TestTrainer_EmptyDataset(t *testing.T) {
	tr := newTrainer(t).WithGenerator(func(rng *rand.Rand) model.Dataset {
		return model.Dataset{}
	})
	tr.Start(10)
	s, err := tr.Tick()
	assert.ErrorIs(t, err, model.EmptyDatasetErr)
	assert.Equal(t, Stop, s)
	assert.False(t, tr.Running())
	assert.Equal(t, 0, tr.State().History.Len())
}

func TestTrainer_Learns(t *testing.T) {
	tr := newTrainer(t)
	tr.Start(200)
	for tr.Running() {
		_, err := tr.Tick()
		require.NoError(t, err)
	}
	history := tr.State().History
	first, _ := history.First()
	last, _ := history.Last()
	assert.Equal(t, 200, history.Len())
	assert.Less(t, last, first)
}

func TestState_Input(t *testing.T) {
	tr := newTrainer(t)
	in := tr.State().Input()
	assert.Nil(t, in.Trend)
	assert.Equal(t, 0, len(in.Costs))
	assert.Equal(t, DefaultIterations, in.Controls.Iterations)

	tr.Start(3)
	for tr.Running() {
		_, err := tr.Tick()
		require.NoError(t, err)
	}
	in = tr.State().Input()
	assert.NotNil(t, in.Trend)
	assert.Equal(t, 3, len(in.Costs))
	assert.Equal(t, 3, in.Progress.Iteration)
	assert.False(t, in.Progress.Running)
}
