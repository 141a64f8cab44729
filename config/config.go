// Package config carries the environment-driven configuration for the
// choropleth command.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is the configuration for the choropleth command.
type Config struct {
	BoundaryPath      string   `envconfig:"BOUNDARY_PATH"`
	DatasetName       string   `envconfig:"DATASET_NAME"`
	RegionProperty    string   `envconfig:"REGION_PROPERTY"`
	SubregionProperty string   `envconfig:"SUBREGION_PROPERTY"`
	AttributePath     string   `envconfig:"ATTRIBUTE_PATH"`
	AttributePattern  string   `envconfig:"ATTRIBUTE_PATTERN"`
	OutputPath        string   `envconfig:"OUTPUT_PATH"`
	Regions           []string `envconfig:"REGIONS"`
	Transform         string   `envconfig:"TRANSFORM"`
	EncodingMin       float64  `envconfig:"ENCODING_MIN"`
	EncodingMax       float64  `envconfig:"ENCODING_MAX"`
}

var cfg *Config

// Get configures the application and returns the configuration
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		DatasetName:    "boundaries",
		RegionProperty: "region",
		// One record per line: entity name, population, area. Thousands
		// separators and a trailing unit are tolerated.
		AttributePattern: `^\s*(.+?)\s{2,}([\d,]+)\s+([\d,.]+)(?:\s+\S.*)?$`,
		OutputPath:       "choropleth.geojson",
		Transform:        "identity",
		EncodingMin:      0,
		EncodingMax:      1,
	}

	return cfg, envconfig.Process("", cfg)
}
