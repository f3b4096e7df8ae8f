package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	svg2polylines "github.com/plotkit/svg2polylines"
	"github.com/plotkit/svg2polylines/svgraster"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		output        string
		width, height int
		strokeWidth   float64
	)

	cmd := &cobra.Command{
		Use:   "preview <file.svg>",
		Short: "Render a PNG preview of the flattened outlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := opts.cfg
			if width > 0 {
				cfg.Preview.Width = width
			}
			if height > 0 {
				cfg.Preview.Height = height
			}
			if strokeWidth > 0 {
				cfg.Preview.StrokeWidth = strokeWidth
			}
			conv, err := cfg.convertOptions()
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			lines, err := svg2polylines.Parse(args[0], conv)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".svg") + ".png"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := svgraster.RenderPNG(f, lines, cfg.rasterOptions()); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d polylines to %s", len(lines), output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG file (default input name with .png)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().Float64Var(&strokeWidth, "stroke-width", 0, "pen width in pixels")
	return cmd
}
