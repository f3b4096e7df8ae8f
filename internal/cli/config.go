package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	svg2polylines "github.com/plotkit/svg2polylines"
	"github.com/plotkit/svg2polylines/svgdoc"
	"github.com/plotkit/svg2polylines/svgflatten"
	"github.com/plotkit/svg2polylines/svgraster"
)

// Config is the TOML configuration file shared by all commands.
// Every field has a working default, so the file is optional.
type Config struct {
	// Tolerance is the maximum curve deviation in document units.
	Tolerance float64 `toml:"tolerance"`
	// MaxDepth caps the curve subdivision recursion.
	MaxDepth int `toml:"max_depth"`
	// ErrorMode is "ignore", "warn" or "strict".
	ErrorMode string `toml:"error_mode"`

	Serve   ServeConfig   `toml:"serve"`
	Preview PreviewConfig `toml:"preview"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Listen string `toml:"listen"`
}

// PreviewConfig configures the PNG preview geometry.
type PreviewConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Padding     float64 `toml:"padding"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Tolerance: svgflatten.DefaultTolerance,
		MaxDepth:  svgflatten.DefaultMaxDepth,
		ErrorMode: "ignore",
		Serve:     ServeConfig{Listen: ":8080"},
		Preview: PreviewConfig{
			Width:       svgraster.DefaultOptions.Width,
			Height:      svgraster.DefaultOptions.Height,
			Padding:     svgraster.DefaultOptions.Padding,
			StrokeWidth: svgraster.DefaultOptions.StrokeWidth,
		},
	}
}

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) errorMode() (svgdoc.ErrorMode, error) {
	switch c.ErrorMode {
	case "", "ignore":
		return svgdoc.IgnoreErrorMode, nil
	case "warn":
		return svgdoc.WarnErrorMode, nil
	case "strict":
		return svgdoc.StrictErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", c.ErrorMode)
}

// convertOptions translates the configuration into driver options.
func (c Config) convertOptions() (svg2polylines.Options, error) {
	mode, err := c.errorMode()
	if err != nil {
		return svg2polylines.Options{}, err
	}
	return svg2polylines.Options{
		Tolerance: c.Tolerance,
		MaxDepth:  c.MaxDepth,
		ErrorMode: mode,
	}, nil
}

// rasterOptions translates the preview geometry into renderer options.
func (c Config) rasterOptions() svgraster.Options {
	return svgraster.Options{
		Width:       c.Preview.Width,
		Height:      c.Preview.Height,
		Padding:     c.Preview.Padding,
		StrokeWidth: c.Preview.StrokeWidth,
	}
}
