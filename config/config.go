package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // Token expiry in hours
	} `yaml:"jwt"`

	Cloudinary struct {
		CloudName    string `yaml:"cloudName"`
		UploadPreset string `yaml:"uploadPreset"`
	} `yaml:"cloudinary"`

	Verifier struct {
		BaseURL string `yaml:"baseUrl"`
		Timeout int    `yaml:"timeout"` // per-call timeout in seconds
	} `yaml:"verifier"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.Verifier.Timeout == 0 {
		cfg.Verifier.Timeout = 60
	}

	return &cfg, nil
}
