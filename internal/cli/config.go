package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/trace"
)

// config holds the optional tuning knobs read from a findline.toml file.
// Zero values mean "use the pipeline default".
type config struct {
	SearchRadius       int `toml:"search_radius"`       // waypoint snap radius, clamped to [1, 50]
	CollisionThreshold int `toml:"collision_threshold"` // ink/paper cutoff, [1, 255]
	DefaultThickness   int `toml:"default_thickness"`   // fallback stroke width
	SampleLength       int `toml:"sample_length"`       // leading points used for thickness
}

// loadConfig reads a toml config from path. An empty path yields the zero
// config without touching the filesystem.
func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "could not read config: %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "could not parse config: %s", path)
	}
	if cfg.CollisionThreshold < 0 || cfg.CollisionThreshold > 255 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig,
			"collision_threshold %d out of range [1, 255]", cfg.CollisionThreshold)
	}
	return cfg, nil
}

// options converts the config into pipeline options. Out-of-range values
// are clamped by trace.New.
func (cfg config) options() trace.Options {
	return trace.Options{
		SearchRadius:       cfg.SearchRadius,
		SampleLength:       cfg.SampleLength,
		CollisionThreshold: uint8(cfg.CollisionThreshold),
		DefaultThickness:   cfg.DefaultThickness,
	}
}
