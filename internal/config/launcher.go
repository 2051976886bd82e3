package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type KafkaEventsCfg struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	Acks    int16    `koanf:"required_acks"`
}

type EventsCfg struct {
	Sinks        []string       `koanf:"sinks"` // stdout|kafka
	JSON         bool           `koanf:"json"`
	PrintCounter bool           `koanf:"print_counter"`
	Kafka        KafkaEventsCfg `koanf:"kafka"`
}

type Config struct {
	LogLevel    string    `koanf:"log_level"`
	LogJSON     bool      `koanf:"log_json"`
	MetricsPort int       `koanf:"metrics_port"`
	Manifest    string    `koanf:"manifest"`
	Events      EventsCfg `koanf:"events"`
}

// Load merges YAML (if present) with env-vars
// (prefix `MODLAUNCH__`, delimiter `__`). The manifest path is resolved
// relative to the config file's directory.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	_ = k.Load(env.Provider("MODLAUNCH__", "__", nil), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if cfg.Manifest != "" && !filepath.IsAbs(cfg.Manifest) && path != "" {
		cfg.Manifest = filepath.Join(filepath.Dir(path), cfg.Manifest)
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
	if c.Manifest == "" {
		c.Manifest = "services.yml"
	}
	if len(c.Events.Sinks) == 0 {
		c.Events.Sinks = []string{"stdout"}
	}
	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = "modlaunch.events"
	}
}
