package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/drakos74/perceptron/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	settings  trainer.Settings
	running   bool
	resets    int
	generated int
	total     int
	err       error
}

func newFakeController() *fakeController {
	return &fakeController{settings: trainer.DefaultSettings()}
}

func (f *fakeController) Start(ctx context.Context, total int) (trainer.Session, bool, error) {
	if f.err != nil {
		return trainer.Session{}, false, f.err
	}
	if f.running {
		return trainer.Session{ID: "running", Total: f.total, Running: true}, false, nil
	}
	if total <= 0 {
		total = f.settings.Iterations
	}
	f.running = true
	f.total = total
	return trainer.Session{ID: "new", Total: total, Running: true}, true, nil
}

func (f *fakeController) Cancel(ctx context.Context) (bool, error) {
	cancelled := f.running
	f.running = false
	return cancelled, f.err
}

func (f *fakeController) Reset(ctx context.Context) error {
	f.resets++
	f.running = false
	return f.err
}

func (f *fakeController) Regenerate(ctx context.Context) error {
	f.generated++
	f.running = false
	return f.err
}

func (f *fakeController) Configure(ctx context.Context, settings trainer.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	f.settings = settings
	return f.err
}

func (f *fakeController) Settings(ctx context.Context) (trainer.Settings, error) {
	return f.settings, f.err
}

func (f *fakeController) Snapshot(ctx context.Context) (view.Snapshot, error) {
	if f.err != nil {
		return view.Snapshot{}, f.err
	}
	return view.Snapshot{
		Controls: view.Controls{
			LearningRate: f.settings.LearningRate,
			Activation:   f.settings.Activation,
			Iterations:   f.settings.Iterations,
		},
		Progress: view.Progress{Running: f.running, Total: f.total},
	}, nil
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, []byte) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	b, err := ioutil.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return w.Result().StatusCode, b
}

func TestServer_Live(t *testing.T) {
	h := NewServer("test", 0).Add(Live()).Handler()
	code, _ := call(t, h, http.MethodGet, "/data", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, h, http.MethodPost, "/data", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestServer_Mount(t *testing.T) {
	h := NewServer("test", 0).
		Mount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "ok")
		})).
		Handler()
	code, b := call(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(b))
}

func TestTraining_Train(t *testing.T) {
	controller := newFakeController()
	h := NewServer("test", 0).Training(controller).Handler()

	code, b := call(t, h, http.MethodPost, "/api/train", `{"iterations":7}`)
	require.Equal(t, http.StatusOK, code)
	var response TrainResponse
	require.NoError(t, json.Unmarshal(b, &response))
	assert.True(t, response.Started)
	assert.Equal(t, 7, response.Session.Total)

	code, b = call(t, h, http.MethodPost, "/api/train", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(b, &response))
	assert.False(t, response.Started)

	code, b = call(t, h, http.MethodPost, "/api/cancel", "")
	require.Equal(t, http.StatusOK, code)
	var cancelled CancelResponse
	require.NoError(t, json.Unmarshal(b, &cancelled))
	assert.True(t, cancelled.Cancelled)

	// an empty body uses the configured iterations
	code, b = call(t, h, http.MethodPost, "/api/train", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(b, &response))
	assert.True(t, response.Started)
	assert.Equal(t, trainer.DefaultIterations, response.Session.Total)

	code, _ = call(t, h, http.MethodPost, "/api/train", `{"iterations":`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, h, http.MethodGet, "/api/train", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestTraining_State(t *testing.T) {
	controller := newFakeController()
	h := NewServer("test", 0).Training(controller).Handler()

	code, b := call(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, code)
	var snapshot view.Snapshot
	require.NoError(t, json.Unmarshal(b, &snapshot))
	assert.Equal(t, trainer.DefaultIterations, snapshot.Controls.Iterations)

	code, _ = call(t, h, http.MethodPost, "/api/reset", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, controller.resets)

	code, _ = call(t, h, http.MethodPost, "/api/regenerate", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, controller.generated)

	controller.err = fmt.Errorf("boom")
	code, b = call(t, h, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", string(b))
}

func TestTraining_Config(t *testing.T) {

	type test struct {
		body     string
		code     int
		settings trainer.Settings
	}

	tests := map[string]test{
		"learning-rate": {
			body:     `{"learning_rate":0.5}`,
			code:     http.StatusOK,
			settings: trainer.Settings{LearningRate: 0.5, Activation: model.Sigmoid, Iterations: trainer.DefaultIterations},
		},
		"activation": {
			body:     `{"activation":"tanh","iterations":30}`,
			code:     http.StatusOK,
			settings: trainer.Settings{LearningRate: 0.1, Activation: model.Tanh, Iterations: 30},
		},
		"unknown-activation": {
			body:     `{"activation":"softmax"}`,
			code:     http.StatusOK,
			settings: trainer.DefaultSettings(),
		},
		"invalid-rate": {
			body:     `{"learning_rate":-1}`,
			code:     http.StatusBadRequest,
			settings: trainer.DefaultSettings(),
		},
		"malformed": {
			body:     `{"learning_rate":`,
			code:     http.StatusBadRequest,
			settings: trainer.DefaultSettings(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			controller := newFakeController()
			h := NewServer("test", 0).Training(controller).Handler()
			code, _ := call(t, h, http.MethodPost, "/api/config", tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.settings, controller.settings)

			code, b := call(t, h, http.MethodGet, "/api/settings", "")
			require.Equal(t, http.StatusOK, code)
			var settings trainer.Settings
			require.NoError(t, json.Unmarshal(b, &settings))
			assert.Equal(t, tt.settings, settings)
		})
	}
}

func TestServer_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer("test", 0).Add(Live()).Run(ctx)
	}()
	cancel()
	assert.NoError(t, <-done)
}
