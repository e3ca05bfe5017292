package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDelay    = 200 * time.Millisecond
	DefaultMethod   = "plain-hunt-6"
	DefaultTenor    = 0
	DefaultDataDir  = ".ringsim"
	DefaultLogLevel = "info"
	DefaultSound    = SoundText
)

const (
	SoundText   = "text"
	SoundAudio  = "audio"
	SoundSilent = "silent"
)

var (
	ErrUnknownMethod = errors.New("config: unknown method")
	ErrInvalidDelay  = errors.New("config: delay must be positive")
	ErrInvalidTenor  = errors.New("config: tenor out of range")
	ErrInvalidSound  = errors.New("config: unknown sound output")
	ErrInvalidKey    = errors.New("config: key index out of range")
)

type Config struct {
	Method   string        `yaml:"method"`
	Delay    time.Duration `yaml:"delay"`
	Sound    string        `yaml:"sound"`
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file,omitempty"`
	DataDir  string        `yaml:"data_dir"`
	Peal     PealConfig    `yaml:"peal"`
	Methods  []MethodSpec  `yaml:"methods,omitempty"`
}

type PealConfig struct {
	Key int `yaml:"key"`
	// Tenor is the absolute bell treated as the tenor; 0 follows the method.
	Tenor int   `yaml:"tenor"`
	Muted []int `yaml:"muted,omitempty"`
}

// MethodSpec is a named place notation with its cover flag.
type MethodSpec struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title,omitempty"`
	Notation string `yaml:"notation"`
	Cover    bool   `yaml:"cover"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:   DefaultMethod,
		Delay:    DefaultDelay,
		Sound:    DefaultSound,
		LogLevel: DefaultLogLevel,
		DataDir:  DefaultDataDir,
		Peal: PealConfig{
			Key:   0,
			Tenor: DefaultTenor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the fields that cannot be repaired at use time. peals is
// the number of selectable peals.
func (c *Config) Validate(peals int) error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidDelay, c.Delay)
	}
	if c.Peal.Tenor < 0 || c.Peal.Tenor > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidTenor, c.Peal.Tenor)
	}
	if c.Peal.Key < 0 || c.Peal.Key >= peals {
		return fmt.Errorf("%w: %d", ErrInvalidKey, c.Peal.Key)
	}
	for _, b := range c.Peal.Muted {
		if b < 1 || b > 12 {
			return fmt.Errorf("%w: muted bell %d", ErrInvalidTenor, b)
		}
	}
	switch c.Sound {
	case SoundText, SoundAudio, SoundSilent:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSound, c.Sound)
	}
	return nil
}

// Lookup finds a method by name among the user's methods first, then the
// built-in library. A 1-based slot number selects by position in the
// combined list, the way the demo keys did.
func (c *Config) Lookup(name string) (MethodSpec, error) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, nil
		}
	}
	if m, ok := GetMethod(name); ok {
		return m, nil
	}
	if slot, err := strconv.Atoi(name); err == nil {
		all := c.AllMethods()
		if slot >= 1 && slot <= len(all) {
			return all[slot-1], nil
		}
	}
	return MethodSpec{}, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
}

// AllMethods is the built-in library followed by the user's methods.
func (c *Config) AllMethods() []MethodSpec {
	all := make([]MethodSpec, 0, len(Library)+len(c.Methods))
	all = append(all, Library...)
	return append(all, c.Methods...)
}
