// Package config reads the optional YAML settings of md2html.
package config

import (
	"errors"
	"fmt"

	"github.com/hesusruiz/vcutils/yaml"
)

var ErrConfig = errors.New("invalid configuration")

const (
	DefaultTitle        = "Document"
	DefaultPreviewStyle = "monokai"
)

// Config holds the settings used by a conversion run
type Config struct {
	Title              string
	Template           string
	KeepListsOnHeading bool
	PreviewStyle       string
}

// Default returns the settings used when no configuration file is given.
func Default() *Config {
	cfg, _ := fromYAML(nil)
	return cfg
}

// Parse builds the configuration from YAML source text.
func Parse(src string) (*Config, error) {
	y, err := yaml.ParseYaml(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return fromYAML(y)
}

// Load reads the configuration from a YAML file.
// An empty fileName returns the default configuration.
func Load(fileName string) (*Config, error) {
	if len(fileName) == 0 {
		return Default(), nil
	}

	y, err := yaml.ParseYamlFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, fileName, err)
	}
	return fromYAML(y)
}

func fromYAML(y *yaml.YAML) (*Config, error) {
	var err error

	// Initialise the config just in case we do not have a suitable one
	if y == nil {
		y, err = yaml.ParseYaml("")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	cfg := &Config{
		Title:              y.String("title", DefaultTitle),
		Template:           y.String("template", ""),
		KeepListsOnHeading: y.Bool("md2html.keepListsOnHeading"),
		PreviewStyle:       y.String("preview.style", DefaultPreviewStyle),
	}

	return cfg, nil
}
