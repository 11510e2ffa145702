package trainer

import (
	"context"
	"errors"

	"github.com/drakos74/perceptron/internal/view"
	"github.com/rs/zerolog/log"
)

// ControllerStoppedErr signals a command sent to a controller that is not running any more.
var ControllerStoppedErr = errors.New("controller stopped")

type reply struct {
	value interface{}
	err   error
}

type command struct {
	name  string
	exec  func(t *Trainer) (interface{}, error)
	reply chan reply
}

// Controller owns a Trainer and serialises all access to it on a single event loop.
// The loop ticks the trainer on every scheduler frame while a session is running,
// and executes commands from other goroutines in between frames.
type Controller struct {
	trainer   *Trainer
	scheduler Scheduler
	commands  chan command
	done      chan struct{}
}

// NewController creates a controller for the given trainer.
func NewController(trainer *Trainer, scheduler Scheduler) *Controller {
	return &Controller{
		trainer:   trainer,
		scheduler: scheduler,
		commands:  make(chan command),
		done:      make(chan struct{}),
	}
}

// Run runs the event loop until the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.scheduler.Stop()
	log.Info().Msg("controller started")
	for {
		select {
		case <-ctx.Done():
			c.trainer.Cancel()
			log.Info().Msg("controller stopped")
			return nil
		case cmd := <-c.commands:
			value, err := cmd.exec(c.trainer)
			if err != nil {
				log.Warn().Err(err).Str("command", cmd.name).Msg("command failed")
			}
			cmd.reply <- reply{value: value, err: err}
		case <-c.scheduler.Frames():
			if !c.trainer.Running() {
				continue
			}
			if _, err := c.trainer.Tick(); err != nil {
				log.Error().Err(err).Msg("could not tick trainer")
			}
		}
	}
}

func (c *Controller) do(ctx context.Context, name string, exec func(t *Trainer) (interface{}, error)) (interface{}, error) {
	cmd := command{
		name:  name,
		exec:  exec,
		reply: make(chan reply, 1),
	}
	select {
	case c.commands <- cmd:
	case <-c.done:
		return nil, ControllerStoppedErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-cmd.reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Start starts a training session, see Trainer.Start.
func (c *Controller) Start(ctx context.Context, total int) (Session, bool, error) {
	var started bool
	v, err := c.do(ctx, "start", func(t *Trainer) (interface{}, error) {
		var session Session
		session, started = t.Start(total)
		return session, nil
	})
	if err != nil {
		return Session{}, false, err
	}
	return v.(Session), started, nil
}

// Cancel cancels the running session.
func (c *Controller) Cancel(ctx context.Context) (bool, error) {
	v, err := c.do(ctx, "cancel", func(t *Trainer) (interface{}, error) {
		return t.Cancel(), nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Reset resets the neuron and the history.
func (c *Controller) Reset(ctx context.Context) error {
	_, err := c.do(ctx, "reset", func(t *Trainer) (interface{}, error) {
		t.Reset()
		return nil, nil
	})
	return err
}

// Regenerate replaces the dataset.
func (c *Controller) Regenerate(ctx context.Context) error {
	_, err := c.do(ctx, "regenerate", func(t *Trainer) (interface{}, error) {
		t.Regenerate()
		return nil, nil
	})
	return err
}

// Configure updates the settings.
func (c *Controller) Configure(ctx context.Context, settings Settings) error {
	_, err := c.do(ctx, "configure", func(t *Trainer) (interface{}, error) {
		return nil, t.Configure(settings)
	})
	return err
}

// Settings returns the latest settings.
func (c *Controller) Settings(ctx context.Context) (Settings, error) {
	v, err := c.do(ctx, "settings", func(t *Trainer) (interface{}, error) {
		return t.Settings(), nil
	})
	if err != nil {
		return Settings{}, err
	}
	return v.(Settings), nil
}

// Snapshot renders the current state.
func (c *Controller) Snapshot(ctx context.Context) (view.Snapshot, error) {
	v, err := c.do(ctx, "snapshot", func(t *Trainer) (interface{}, error) {
		return view.Build(t.State().Input())
	})
	if err != nil {
		return view.Snapshot{}, err
	}
	return v.(view.Snapshot), nil
}
