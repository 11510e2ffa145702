package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/drakos74/perceptron/internal/view"
	"github.com/rs/zerolog/log"
)

// Controller accepts the training commands.
type Controller interface {
	Start(ctx context.Context, total int) (trainer.Session, bool, error)
	Cancel(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
	Regenerate(ctx context.Context) error
	Configure(ctx context.Context, settings trainer.Settings) error
	Settings(ctx context.Context) (trainer.Settings, error)
	Snapshot(ctx context.Context) (view.Snapshot, error)
}

// TrainRequest starts a session.
// Iterations falls back to the configured number of epochs.
type TrainRequest struct {
	Iterations int `json:"iterations"`
}

// TrainResponse is the outcome of a train request.
type TrainResponse struct {
	Session trainer.Session `json:"session"`
	Started bool            `json:"started"`
}

// CancelResponse is the outcome of a cancel request.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// ConfigRequest updates the settings, missing fields keep their current value.
type ConfigRequest struct {
	LearningRate *float64 `json:"learning_rate,omitempty"`
	Activation   *string  `json:"activation,omitempty"`
	Iterations   *int     `json:"iterations,omitempty"`
}

// Merge applies the request on top of the given settings.
// Unknown activation names fall back to sigmoid.
func (c ConfigRequest) Merge(settings trainer.Settings) trainer.Settings {
	if c.LearningRate != nil {
		settings.LearningRate = *c.LearningRate
	}
	if c.Activation != nil {
		activation, ok := model.ParseActivation(*c.Activation)
		if !ok {
			log.Warn().Str("activation", *c.Activation).Str("fallback", activation.String()).Msg("unknown activation")
		}
		settings.Activation = activation
	}
	if c.Iterations != nil {
		settings.Iterations = *c.Iterations
	}
	return settings
}

// Training adds the training routes for the given controller.
func (s *Server) Training(controller Controller) *Server {
	t := training{controller: controller, debug: s.debug}
	return s.
		Add(Live()).
		AddRoute(GET, Api, "state", t.state).
		AddRoute(POST, Api, "train", t.train).
		AddRoute(POST, Api, "cancel", t.cancel).
		AddRoute(POST, Api, "reset", t.reset).
		AddRoute(POST, Api, "regenerate", t.regenerate).
		AddRoute(GET, Api, "settings", t.settings).
		AddRoute(POST, Api, "config", t.config)
}

type training struct {
	controller Controller
	debug      bool
}

func (t training) state(r *http.Request) ([]byte, int, error) {
	return t.snapshot(r.Context())
}

func (t training) snapshot(ctx context.Context) ([]byte, int, error) {
	snapshot, err := t.controller.Snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(snapshot)
	return b, http.StatusOK, err
}

func (t training) train(r *http.Request) ([]byte, int, error) {
	var request TrainRequest
	if err := JsonRead(r, t.debug, &request); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	session, started, err := t.controller.Start(r.Context(), request.Iterations)
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(TrainResponse{
		Session: session,
		Started: started,
	})
	return b, http.StatusOK, err
}

func (t training) cancel(r *http.Request) ([]byte, int, error) {
	cancelled, err := t.controller.Cancel(r.Context())
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(CancelResponse{Cancelled: cancelled})
	return b, http.StatusOK, err
}

func (t training) reset(r *http.Request) ([]byte, int, error) {
	if err := t.controller.Reset(r.Context()); err != nil {
		return nil, 0, err
	}
	return t.snapshot(r.Context())
}

func (t training) regenerate(r *http.Request) ([]byte, int, error) {
	if err := t.controller.Regenerate(r.Context()); err != nil {
		return nil, 0, err
	}
	return t.snapshot(r.Context())
}

func (t training) settings(r *http.Request) ([]byte, int, error) {
	settings, err := t.controller.Settings(r.Context())
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(settings)
	return b, http.StatusOK, err
}

func (t training) config(r *http.Request) ([]byte, int, error) {
	var request ConfigRequest
	if err := JsonRead(r, t.debug, &request); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	current, err := t.controller.Settings(r.Context())
	if err != nil {
		return nil, 0, err
	}
	settings := request.Merge(current)
	if err := t.controller.Configure(r.Context(), settings); err != nil {
		if errors.Is(err, trainer.InvalidSettingsErr) {
			return []byte(err.Error()), http.StatusBadRequest, nil
		}
		return nil, 0, err
	}
	b, err := json.Marshal(settings)
	return b, http.StatusOK, err
}
