package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort      = 3000
	DefaultPublicDir = "public"
	DefaultViewsDir  = "views"
	DefaultEnv       = "prod"
)

type Config struct {
	Env          string `yaml:"env"`
	Host         string `yaml:"host" env:"HOST"`
	Port         int    `yaml:"port" env:"PORT"`
	PublicDir    string `yaml:"publicDir"`
	ViewsDir     string `yaml:"viewsDir"`
	CacheEnabled bool   `yaml:"cache"`
	MinifyHTML   bool   `yaml:"minifyHTML"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
}

func DefaultConfig() Config {
	return Config{
		Env:       DefaultEnv,
		Port:      DefaultPort,
		PublicDir: DefaultPublicDir,
		ViewsDir:  DefaultViewsDir,
	}
}

// LoadConfig layers the yaml file at path (if it exists) over the defaults,
// then applies PORT and HOST from the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.PublicDir == "" {
		cfg.PublicDir = DefaultPublicDir
	}
	if cfg.ViewsDir == "" {
		cfg.ViewsDir = DefaultViewsDir
	}
	if cfg.Env == "" {
		cfg.Env = DefaultEnv
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.PublicDir == "" {
		return errors.New("publicDir must not be empty")
	}
	if c.ViewsDir == "" {
		return errors.New("viewsDir must not be empty")
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
