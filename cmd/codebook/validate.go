package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codebook/pkg/parser"
	"github.com/goliatone/go-codebook/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <codebook.yaml>",
	Short: "Check a codebook against every structural invariant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := parser.ParseFile(args[0],
			parser.WithValidationOptions(validation.WithSoftVariableLimit(cfg.SoftVariableLimit)),
		)
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid codebook (rule %s)\n  %s\n", verr.Rule, verr)
			}
			return err
		}

		for _, advisory := range result.Advisories {
			fmt.Fprintf(cmd.ErrOrStderr(), "advisory: %s\n", advisory)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d variables)\n",
			args[0], len(result.Document.Variables))
		return nil
	},
}
