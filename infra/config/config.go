package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const path = "infra/config"

// Key is the name of the default config file.
const Key = "perceptron"

const (
	defaultPort    = 6090
	defaultFrameMS = 16
	defaultTrees   = 100
)

// Config captures the runtime knobs of the perceptron.
type Config struct {
	LearningRate float64 `json:"learning_rate"`
	Activation   string  `json:"activation"`
	Iterations   int     `json:"iterations"`
	Seed         int64   `json:"seed"`
	FrameMS      int     `json:"frame_interval_ms"`
	Port         int     `json:"port"`
	Trees        int     `json:"trees"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	LearningRate float64
	Activation   string
	Iterations   int
	Seed         int64
	FrameMS      int
	Port         int
	Trees        int
}

// Default returns the config used when no file is given.
func Default() *Config {
	settings := trainer.DefaultSettings()
	return &Config{
		LearningRate: settings.LearningRate,
		Activation:   settings.Activation.String(),
		Iterations:   settings.Iterations,
		FrameMS:      defaultFrameMS,
		Port:         defaultPort,
		Trees:        defaultTrees,
	}
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) []byte {

	b, err := ioutil.ReadFile(fmt.Sprintf("%s/%s.json", path, key))
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}

	log.Info().Str("config", key).Msg("loaded default config")

	return b

}

// Load reads a config file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}
	cfg := Default()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("loaded config")
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Activation != "" {
		c.Activation = o.Activation
	}
	if o.Iterations > 0 {
		c.Iterations = o.Iterations
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.FrameMS > 0 {
		c.FrameMS = o.FrameMS
	}
	if o.Port > 0 {
		c.Port = o.Port
	}
	if o.Trees > 0 {
		c.Trees = o.Trees
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Iterations <= 0 {
		return errors.Errorf("iterations must be > 0 (got %d)", c.Iterations)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("port must be within [0,65535] (got %d)", c.Port)
	}
	if c.FrameMS <= 0 {
		c.FrameMS = defaultFrameMS
	}
	if c.Trees <= 0 {
		c.Trees = defaultTrees
	}
	return nil
}

// ActivationKind parses the activation name.
// Unknown names fall back to sigmoid.
func (c *Config) ActivationKind() model.Activation {
	activation, ok := model.ParseActivation(c.Activation)
	if !ok {
		log.Warn().
			Str("activation", c.Activation).
			Str("fallback", activation.String()).
			Msg("unknown activation")
	}
	return activation
}

// Settings returns the trainer settings.
func (c *Config) Settings() trainer.Settings {
	return trainer.Settings{
		LearningRate: c.LearningRate,
		Activation:   c.ActivationKind(),
		Iterations:   c.Iterations,
	}
}

// FrameInterval returns the duration between two training frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameMS) * time.Millisecond
}

// Rand returns the random source for the configured seed.
// A zero seed draws a time based one.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("random source")
	return rand.New(rand.NewSource(seed))
}
