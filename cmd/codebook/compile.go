package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codebook/pkg/compiler"
	"github.com/goliatone/go-codebook/pkg/extraction"
	"github.com/goliatone/go-codebook/pkg/parser"
	"github.com/goliatone/go-codebook/pkg/validation"
)

var (
	compileVariables      []string
	compileGroup          string
	compileSchemaName     string
	compileOut            string
	compileResponseFormat bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <codebook.yaml>",
	Short: "Compile a codebook into an extraction schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := parser.ParseFile(args[0],
			parser.WithValidationOptions(validation.WithSoftVariableLimit(cfg.SoftVariableLimit)),
		)
		if err != nil {
			return err
		}

		var opts []compiler.Option
		if len(compileVariables) > 0 {
			opts = append(opts, compiler.WithVariables(compileVariables...))
		}
		if cmd.Flags().Changed("group") {
			opts = append(opts, compiler.WithGroup(compileGroup))
		}

		schema, err := compiler.Compile(result.Document, opts...)
		if err != nil {
			return err
		}

		var payload []byte
		if compileResponseFormat {
			name := compileSchemaName
			if name == "" {
				name = cfg.SchemaName
			}
			format, err := extraction.Format(name, schema)
			if err != nil {
				return err
			}
			payload, err = json.MarshalIndent(format, "", "  ")
			if err != nil {
				return err
			}
		} else {
			payload, err = json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}
		}

		return writeOutput(cmd, compileOut, append(payload, '\n'))
	},
}

func init() {
	compileCmd.Flags().StringSliceVar(&compileVariables, "vars", nil, "compile only the named variables")
	compileCmd.Flags().StringVar(&compileGroup, "group", "", "compile only the variables in a group")
	compileCmd.Flags().StringVar(&compileSchemaName, "name", "", "schema name used in the response format envelope")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "output file (stdout if empty)")
	compileCmd.Flags().BoolVar(&compileResponseFormat, "response-format", false, "emit the full structured-output response format envelope")
}

func writeOutput(cmd *cobra.Command, path string, payload []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
