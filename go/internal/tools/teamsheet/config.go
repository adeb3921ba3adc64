package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mcdev12/teamsheet/go/internal/events"
	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/imports"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	Import  importer.Config        `yaml:"import"`
	Assets  AssetsConfig           `yaml:"assets"`
	Events  events.JetStreamConfig `yaml:"events"`
	History HistoryConfig          `yaml:"history"`

	natsURL        string
	pushgatewayURL string
}

// AssetsConfig picks the asset store: a base URL selects the HTTP store, else Root is used
type AssetsConfig struct {
	Root    string        `yaml:"root"`
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type HistoryConfig struct {
	Retention int `yaml:"retention"`
}

func defaultConfig() *Config {
	return &Config{
		Import:  importer.DefaultConfig(),
		Assets:  AssetsConfig{Root: ".", Timeout: 30 * time.Second},
		Events:  events.DefaultJetStreamConfig(),
		History: HistoryConfig{Retention: imports.DefaultRetention},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the caller asked for it explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if v := os.Getenv("NATS_URL"); v != "" {
		config.natsURL = v
		config.Events.URL = v
	}
	config.pushgatewayURL = os.Getenv("PUSHGATEWAY_URL")

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	imp := c.Import
	switch {
	case imp.Source == "":
		return errors.New("import.source must not be empty")
	case imp.TeamsSheet == "" || imp.PlayersSheet == "":
		return errors.New("import sheet names must not be empty")
	case imp.TeamsSheet == imp.PlayersSheet:
		return fmt.Errorf("teams and players cannot both be read from sheet %q", imp.TeamsSheet)
	case imp.TeamsFolder == "" || imp.PlayersFolder == "":
		return errors.New("import folders must not be empty")
	case c.Assets.Root == "" && c.Assets.BaseURL == "":
		return errors.New("assets.root or assets.base_url is required")
	case c.Assets.Timeout < 0:
		return errors.New("assets.timeout must not be negative")
	}
	return nil
}
