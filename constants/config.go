package constants

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	DefaultTrack   string        `yaml:"default_track"`
	Workers        int           `yaml:"workers"`
	WatchInterval  time.Duration `yaml:"watch_interval"`
	LogLevel       string        `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:     DefaultListenAddr,
		AllowedOrigins: []string{"*"},
		DefaultTrack:   DefaultTrack,
		WatchInterval:  500 * time.Millisecond,
		LogLevel:       "info",
	}
}

// LoadConfig reads an optional YAML file over the defaults, then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		dat, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "could not read config")
		}
		if err := yaml.Unmarshal(dat, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "could not parse config %s", path)
		}
	}

	if os.Getenv("CHARTDEX_ADDR") != "" {
		cfg.ListenAddr = GetListenAddr()
	}
	if os.Getenv("CHARTDEX_TRACK") != "" {
		cfg.DefaultTrack = GetDefaultTrack()
	}
	if n := GetWorkers(); n > 0 {
		cfg.Workers = n
	}
	return cfg, nil
}
