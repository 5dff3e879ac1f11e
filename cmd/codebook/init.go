package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codebook/internal/scaffold"
)

var initOut string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a codebook interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initOut); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", initOut)
		}

		payload, err := scaffold.Run(scaffold.NewPrompter())
		if err != nil {
			return err
		}
		if err := os.WriteFile(initOut, payload, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", initOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", initOut)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", "codebook.yaml", "path for the new codebook")
}
