package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
}

// FileValues is the optional YAML overlay. Environment variables take
// precedence over file values, file values over built-in defaults.
type FileValues struct {
	Port            string `yaml:"port"`
	AppName         string `yaml:"app_name"`
	DataFolder      string `yaml:"data_folder"`
	Env             string `yaml:"env"`
	APIBaseURL      string `yaml:"api_base_url"`
	APITimeout      string `yaml:"api_timeout"`
	TokenStorageKey string `yaml:"token_storage_key"`
}

func New() Config {
	return newConfig(FileValues{})
}

// Load reads a YAML config file and overlays it with the environment.
// An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var values FileValues
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return newConfig(values), nil
}

func newConfig(values FileValues) Config {
	return mainConfig{
		EnvVars: EnvVars{file: values},
		API:     API{file: values},
		Storage: Storage{file: values},
	}
}
