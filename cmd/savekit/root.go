package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "savekit",
	Short: "Blueprint export strings and level.dat extraction for game saves",
	Long: `Savekit converts blueprints between human-readable JSON and packed
export strings, and unpacks the level.dat content from zipped save archives.

An export string is a single line: a one-character version tag followed by
the base64 encoding of the zlib-compressed JSON document.

Examples:
  # Pack a JSON blueprint into an export string
  savekit encode blueprint.json export.txt

  # Unpack an export string back to JSON
  savekit decode export.txt blueprint.json

  # Extract level.dat from an autosave to stdout
  savekit leveldat _autosave1.zip > level.dat`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger returns a development logger on stderr when --verbose is set,
// otherwise a no-op logger. Stdout stays reserved for extracted data.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
