package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-codebook/internal/config"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	cfgFile string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "codebook",
	Short: "Validate codebooks and compile them into extraction schemas",
	Long: `Codebook turns a declarative YAML description of typed codes into a
validated document model and a structured-output schema for LLM-based
text extraction.

Typical flow:
  codebook init                      scaffold a starter codebook
  codebook validate book.yaml        check invariants, print advisories
  codebook compile book.yaml         emit the extraction schema
  codebook render book.yaml          produce a reviewer-facing document`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.codebook/config.yaml)",
	)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initCmd)
}
