package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tustin/internal/catalog"
)

const (
	DefaultTs    = 0.01
	DefaultTsSym = "Ts"
	DefaultForm  = "all"
)

// Config drives a derivation run: which element, the sampling period (both
// its symbol for the formulas and its value for numeric verification), the
// presentation form, and parameter value overrides.
type Config struct {
	Element string             `yaml:"element"`
	TsSym   string             `yaml:"ts_symbol"`
	Ts      float64            `yaml:"ts"`
	Form    string             `yaml:"form"`
	Prewarp float64            `yaml:"prewarp"`
	Params  map[string]float64 `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Element: "pt1",
		TsSym:   DefaultTsSym,
		Ts:      DefaultTs,
		Form:    DefaultForm,
		Params:  map[string]float64{},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Binding merges the element's defaults with the configured overrides, and
// rejects overrides that name no parameter of the element.
func (c *Config) Binding(el catalog.Element) (map[string]float64, error) {
	b := el.Defaults()
	for name, v := range c.Params {
		if _, ok := b[name]; !ok {
			return nil, fmt.Errorf("element %s has no parameter %q", el.Name, name)
		}
		b[name] = v
	}
	return b, nil
}
