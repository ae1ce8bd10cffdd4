package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSize      = 24
	DefaultSpeed     = 1.0
	DefaultMaxValue  = 1000
	DefaultFrameRate = 60
	DefaultTheme     = "cyberpunk"
)

// Config describes one visualization run: which algorithm, what array, how
// fast. It is passed explicitly into construction; nothing reads it from
// globals.
type Config struct {
	Algorithm string  `yaml:"algorithm"`
	Size      int     `yaml:"size"`
	Seed      int64   `yaml:"seed"`
	MaxValue  int     `yaml:"max_value"`
	Speed     float64 `yaml:"speed"`
	FrameRate int     `yaml:"fps"`
	Theme     string  `yaml:"theme"`
	Audio     bool    `yaml:"audio"`
	// Values overrides random generation with an explicit array.
	Values []int `yaml:"values,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		MaxValue:  DefaultMaxValue,
		Speed:     DefaultSpeed,
		FrameRate: DefaultFrameRate,
		Theme:     DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("size must be non-negative, got %d", c.Size)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", c.Speed)
	}
	if c.MaxValue < 1 {
		return fmt.Errorf("max_value must be at least 1, got %d", c.MaxValue)
	}
	return nil
}

// InitValues returns the array for this run: the explicit values if given,
// otherwise Size seeded-random values in [1, MaxValue].
func (c *Config) InitValues() []int {
	if len(c.Values) > 0 {
		out := make([]int, len(c.Values))
		copy(out, c.Values)
		return out
	}
	rng := rand.New(rand.NewSource(c.Seed))
	values := make([]int, c.Size)
	for i := range values {
		values[i] = 1 + rng.Intn(c.MaxValue)
	}
	return values
}
