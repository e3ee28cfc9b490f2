package dolittle

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Config is the REPL startup configuration loaded from a dolittle.yaml
// file: prompts, an optional starting source file, and whether to enable
// the eval tracer by default.
type Config struct {
	PS1 string `yaml:"ps1"`
	PS2 string `yaml:"ps2"`
	Init string `yaml:"init"`
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the settings used when no config file is given;
// LoadConfig starts from it, so keys absent from the file keep these values.
func DefaultConfig() *Config {
	return &Config{PS1: "dolittle> ", PS2: "... "}
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
