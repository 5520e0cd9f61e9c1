// Package config loads the demo harness's optional TOML configuration
// file, which overrides the CLI flag defaults of cmd/rstartree.
package config

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Harness mirrors the CLI surface of cmd/rstartree so a TOML file can
// override any subset of flag defaults before flag parsing runs.
type Harness struct {
	NumData    int    `toml:"num_data"`
	NumQueries int    `toml:"num_queries"`
	Dimension  int    `toml:"dimension"`
	Capacity   int    `toml:"capacity"`
	Validate   bool   `toml:"validate"`
	StreamPath string `toml:"stream_path"`
	Compare    bool   `toml:"compare"`
	Serve      string `toml:"serve"`
	Seed       string `toml:"seed"`
}

// Default returns the harness defaults named in the CLI flag table.
func Default() Harness {
	return Harness{
		NumData:    10000,
		NumQueries: 1000,
		Dimension:  2,
		Capacity:   128,
	}
}

// Load reads a TOML file at path and overlays its fields onto Default.
// A missing file is not an error; Load then simply returns the defaults.
func Load(path string) (Harness, error) {
	h := Default()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return h, errors.Wrapf(err, "config: reading %s", path)
	}

	if err := toml.Unmarshal(data, &h); err != nil {
		return h, errors.Wrapf(err, "config: parsing %s", path)
	}
	return h, nil
}
