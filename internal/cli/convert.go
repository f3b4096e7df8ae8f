package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	svg2polylines "github.com/plotkit/svg2polylines"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var (
		output    string
		tolerance float64
		maxDepth  int
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file.svg>",
		Short: "Convert an SVG file to polylines, written as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := opts.cfg
			if tolerance > 0 {
				cfg.Tolerance = tolerance
			}
			if maxDepth > 0 {
				cfg.MaxDepth = maxDepth
			}
			if strict {
				cfg.ErrorMode = "strict"
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
			points := 0
			for _, line := range lines {
				points += len(line)
			}
			prog.done(fmt.Sprintf("Converted %d polylines, %d points", len(lines), points))

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(lines)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "maximum curve deviation in document units")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "curve subdivision depth cap")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unsupported SVG elements")
	return cmd
}
