package api

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/transdom/site-edge/internal/domain"
)

type Config struct {
	Server struct {
		Bind      string `yaml:"bind"`
		RateLimit int    `yaml:"rateLimit"`
	} `yaml:"server"`

	Auth struct {
		Token string `yaml:"token"`
	} `yaml:"auth"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Static struct {
		Dir string `yaml:"dir"`
	} `yaml:"static"`

	Build domain.BuildConfig `yaml:"build"`

	Export ExportConfig `yaml:"export"`
}

type ExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Daily   string `yaml:"daily"`
	Dir     string `yaml:"dir"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty), loads a
// .env file into the environment when one exists and applies defaults.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Build.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Server.Bind == "" {
		c.Server.Bind = ":8080"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 100
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "public"
	}
	if c.Export.Daily == "" {
		c.Export.Daily = "03:30"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = c.Static.Dir
	}
	b, err := c.Build.WithDefaults()
	if err != nil {
		return err
	}
	c.Build = b
	return nil
}
