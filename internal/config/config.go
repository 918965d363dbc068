package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/collision/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the collisiond configuration file.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Simulation SimulationConfig `yaml:"simulation"`
	Level      LevelConfig      `yaml:"level"`
	Viz        VizConfig        `yaml:"viz"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type SimulationConfig struct {
	TickRate int           `yaml:"tick_rate"`
	Bodies   int           `yaml:"bodies"`
	Seed     int64         `yaml:"seed"`
	Width    float32       `yaml:"width"`
	Height   float32       `yaml:"height"`
	MaxSpeed float32       `yaml:"max_speed"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

// TickInterval is the wall-clock length of one tick.
func (s SimulationConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

type LevelConfig struct {
	// Path to a level file; empty means a walled arena sized from Simulation.
	Path string `yaml:"path"`
}

type VizConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// Every Nth frame is broadcast.
	FrameStride int `yaml:"frame_stride"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Encoding: "console"},
		Simulation: SimulationConfig{
			TickRate: 60,
			Bodies:   24,
			Seed:     1,
			Width:    800,
			Height:   600,
			MaxSpeed: 120,
		},
		Viz: VizConfig{Enabled: true, Addr: ":8090", FrameStride: 2},
	}
}

// Load decodes YAML from r over the defaults and validates the result.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile loads the configuration at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	s := c.Simulation
	if s.TickRate <= 0 || s.TickRate > 1000 {
		return fmt.Errorf("%w: tick_rate %d out of range", ErrInvalidConfig, s.TickRate)
	}
	if s.Bodies < 0 {
		return fmt.Errorf("%w: bodies must not be negative", ErrInvalidConfig)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: arena size must be positive", ErrInvalidConfig)
	}
	if s.MaxSpeed < 0 {
		return fmt.Errorf("%w: max_speed must not be negative", ErrInvalidConfig)
	}
	if c.Viz.Enabled && c.Viz.Addr == "" {
		return fmt.Errorf("%w: viz addr is required when viz is enabled", ErrInvalidConfig)
	}
	if c.Viz.FrameStride <= 0 {
		return fmt.Errorf("%w: frame_stride must be positive", ErrInvalidConfig)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}
