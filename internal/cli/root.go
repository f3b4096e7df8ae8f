package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
)

// SetVersion sets the version information displayed by --version.
// Typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// options shared by all commands through flags and the config file.
type rootOptions struct {
	configPath string
	cfg        Config
}

// Execute runs the svg2polylines CLI and returns an error if any
// command fails. The logger is attached to the context and accessible
// to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "svg2polylines",
		Short:        "svg2polylines converts SVG outlines to straight-line polylines",
		Long:         `svg2polylines flattens the curves of an SVG document into sequences of straight line segments, for plotters, cutters and other consumers that cannot render curves directly.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))

			opts.cfg = DefaultConfig()
			if opts.configPath != "" {
				cfg, err := LoadConfig(opts.configPath)
				if err != nil {
					return err
				}
				opts.cfg = cfg
			}
			return nil
		},
	}

	if commit != "" {
		root.SetVersionTemplate("svg2polylines " + version + "\ncommit: " + commit + "\n")
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newPreviewCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root.ExecuteContext(ctx)
}
