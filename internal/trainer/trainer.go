package trainer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/drakos74/perceptron/internal/buffer"
	"github.com/drakos74/perceptron/internal/dataset"
	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/neuron"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InputSize is the number of inputs of the trained neuron.
const InputSize = 2

// Signal tells the host scheduler whether to schedule another tick.
type Signal int

const (
	// Stop means the session is over and no more ticks are needed.
	Stop Signal = iota
	// Continue means the session expects another tick.
	Continue
)

func (s Signal) String() string {
	if s == Continue {
		return "continue"
	}
	return "stop"
}

// Generator creates a new dataset.
type Generator func(rng *rand.Rand) model.Dataset

// Trainer drives the training of a neuron, one epoch per tick.
// It is not safe for concurrent use, all calls must come from the same goroutine.
// Settings changed while a session is running are applied before the next epoch.
type Trainer struct {
	rng       *rand.Rand
	generate  Generator
	state     State
	pending   *Settings
	observers []Observer
}

// New creates a trainer with a fresh neuron and a generated dataset.
func New(settings Settings, rng *rand.Rand) (*Trainer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	t := &Trainer{
		rng:       rng,
		generate:  dataset.Generate,
		observers: make([]Observer, 0),
		state: State{
			History:  buffer.NewHistory(buffer.DefaultTrendWindow),
			Settings: settings,
		},
	}
	t.state.Dataset = t.generate(rng)
	t.state.Neuron = t.newNeuron()
	return t, nil
}

// WithGenerator replaces the dataset generator and regenerates the dataset.
func (t *Trainer) WithGenerator(generate Generator) *Trainer {
	t.generate = generate
	t.state.Dataset = generate(t.rng)
	return t
}

// Observe registers an observer for all state changes.
func (t *Trainer) Observe(observer Observer) *Trainer {
	t.observers = append(t.observers, observer)
	return t
}

func (t *Trainer) newNeuron() *neuron.Neuron {
	return neuron.New(InputSize, t.rng).
		WithRate(t.state.Settings.LearningRate).
		WithActivation(t.state.Settings.Activation)
}

func (t *Trainer) notify(eventType EventType, cost float64) {
	event := Event{
		Type:    eventType,
		Session: t.state.Session,
		Cost:    cost,
		State:   t.state,
	}
	for _, observer := range t.observers {
		observer.Observe(event)
	}
}

// Configure sets new settings.
// If a session is running they take effect at the start of the next epoch,
// otherwise immediately.
func (t *Trainer) Configure(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if t.state.Session.Running {
		t.pending = &settings
		log.Debug().
			Str("session", t.state.Session.ID).
			Float64("learning-rate", settings.LearningRate).
			Str("activation", settings.Activation.String()).
			Msg("settings scheduled for next epoch")
		return nil
	}
	t.apply(settings)
	return nil
}

func (t *Trainer) apply(settings Settings) {
	t.pending = nil
	t.state.Settings = settings
	t.state.Neuron.
		WithRate(settings.LearningRate).
		WithActivation(settings.Activation)
}

// Settings returns the latest settings, including the ones pending for the next epoch.
func (t *Trainer) Settings() Settings {
	if t.pending != nil {
		return *t.pending
	}
	return t.state.Settings
}

// Start starts a session for the given number of epochs.
// A non-positive total uses the configured iterations.
// It is a no-op if a session is already running.
// The history is cleared only when starting from iteration 0, a cancelled session resumes where it stopped.
func (t *Trainer) Start(total int) (Session, bool) {
	if t.state.Session.Running {
		return t.state.Session, false
	}
	if total <= 0 {
		total = t.state.Settings.Iterations
	}
	if t.state.Session.Iteration == 0 {
		t.state.History.Reset()
	}
	t.state.Session = Session{
		ID:        uuid.New().String(),
		Iteration: t.state.Session.Iteration,
		Total:     total,
		Running:   true,
		Started:   time.Now(),
	}
	log.Info().
		Str("session", t.state.Session.ID).
		Int("iteration", t.state.Session.Iteration).
		Int("total", total).
		Float64("learning-rate", t.state.Settings.LearningRate).
		Str("activation", t.state.Settings.Activation.String()).
		Msg("training started")
	t.notify(StartedEvent, 0)
	return t.state.Session, true
}

// Cancel stops the running session.
// It returns false if there was no session running.
func (t *Trainer) Cancel() bool {
	if !t.state.Session.Running {
		return false
	}
	t.state.Session.Running = false
	log.Info().
		Str("session", t.state.Session.ID).
		Int("iteration", t.state.Session.Iteration).
		Int("total", t.state.Session.Total).
		Msg("training cancelled")
	t.notify(CancelledEvent, 0)
	t.flush()
	return true
}

// flush applies any settings left pending by a session that is no longer running.
func (t *Trainer) flush() {
	if t.pending != nil {
		t.apply(*t.pending)
	}
}

// Reset replaces the neuron with a fresh one, clears the history and cancels any running session.
func (t *Trainer) Reset() {
	t.state.Session.Running = false
	t.flush()
	t.state.Neuron = t.newNeuron()
	t.state.History.Reset()
	t.state.Session = Session{}
	log.Info().
		Floats64("weights", t.state.Neuron.Weights()).
		Float64("bias", t.state.Neuron.Bias()).
		Msg("neuron reset")
	t.notify(ResetEvent, 0)
}

// Regenerate replaces the dataset. A running session is cancelled first.
func (t *Trainer) Regenerate() {
	t.Cancel()
	t.state.Dataset = t.generate(t.rng)
	log.Info().
		Int("examples", len(t.state.Dataset)).
		Interface("labels", t.state.Dataset.Count()).
		Msg("dataset regenerated")
	t.notify(RegeneratedEvent, 0)
}

// Tick runs one epoch of the running session.
// Cancellation is observed only here, before the epoch starts.
func (t *Trainer) Tick() (Signal, error) {
	session := &t.state.Session
	if !session.Running {
		return Stop, nil
	}
	if session.Iteration >= session.Total {
		t.finish()
		return Stop, nil
	}

	t.flush()

	cost, err := t.state.Neuron.TrainEpoch(t.state.Dataset)
	if err != nil {
		session.Running = false
		log.Error().
			Err(err).
			Str("session", session.ID).
			Int("iteration", session.Iteration).
			Msg("training failed")
		t.notify(CancelledEvent, 0)
		return Stop, fmt.Errorf("epoch %d of session %s: %w", session.Iteration, session.ID, err)
	}
	t.state.History.Push(cost)
	session.Iteration++

	log.Debug().
		Str("session", session.ID).
		Int("epoch", session.Iteration).
		Float64("cost", cost).
		Msg("epoch")
	t.notify(EpochEvent, cost)

	if session.Iteration >= session.Total {
		t.finish()
		return Stop, nil
	}
	return Continue, nil
}

func (t *Trainer) finish() {
	t.state.Session.Running = false
	last, _ := t.state.History.Last()
	log.Info().
		Str("session", t.state.Session.ID).
		Int("iterations", t.state.Session.Iteration).
		Float64("cost", last).
		Dur("duration", time.Since(t.state.Session.Started)).
		Msg("training finished")
	t.notify(FinishedEvent, 0)
	t.flush()
}

// Running returns true while a session is running.
func (t *Trainer) Running() bool {
	return t.state.Session.Running
}

// State returns the current training state.
func (t *Trainer) State() State {
	return t.state
}
