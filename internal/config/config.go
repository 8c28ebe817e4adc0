package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Score struct {
		Key          string `yaml:"key"`
		PollInterval string `yaml:"pollInterval"`
	} `yaml:"score"`
	Challenge struct {
		CelebrationTTL string `yaml:"celebrationTtl"`
	} `yaml:"challenge"`
	Cities struct {
		Count    int    `yaml:"count"`
		CacheTTL string `yaml:"cacheTtl"`
	} `yaml:"cities"`
	Invite struct {
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"invite"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty/invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// CityCount returns the configured city pool size or the fallback.
func (c Config) CityCount(fallback int) int {
	if c.Cities.Count > 0 {
		return c.Cities.Count
	}
	return fallback
}
