package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-codebook/pkg/parser"
	"github.com/goliatone/go-codebook/pkg/render"
	"github.com/goliatone/go-codebook/pkg/validation"
)

var (
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render <codebook.yaml>",
	Short: "Render a codebook as human-readable documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := parser.ParseFile(args[0],
			parser.WithValidationOptions(validation.WithSoftVariableLimit(cfg.SoftVariableLimit)),
		)
		if err != nil {
			return err
		}

		format := render.Format(renderFormat)
		if renderFormat == "" {
			format = render.Format(cfg.DefaultFormat)
		}

		renderer, err := render.New()
		if err != nil {
			return err
		}
		out, err := renderer.Render(result.Document, format)
		if err != nil {
			return err
		}

		return writeOutput(cmd, renderOut, out)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: markdown or html")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (stdout if empty)")
}
