package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgeyard/savekit"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [exchange_file] [out_file]",
	Short: "Unpack an export string back into readable JSON",
	Long: `Unpack an export string back into readable JSON.

The output is indented with one space, keeps object keys in their original
order and emits non-ASCII characters literally.

An unsupported version tag is reported on stdout and is not an error, but any
existing out_file is removed so a stale result cannot be mistaken for this
run's output.

Defaults: exchange_file "bp.txt", out_file "bp_out.txt".`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	exchangeFile, outFile := "bp.txt", "bp_out.txt"
	if len(args) > 0 {
		exchangeFile = args[0]
	}
	if len(args) > 1 {
		outFile = args[1]
	}

	client, err := savekit.New(savekit.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	export, err := os.ReadFile(exchangeFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", exchangeFile, err)
	}

	doc, err := client.Decode(string(export))
	if err != nil {
		if tag, ok := savekit.IsUnsupportedVersion(err); ok {
			fmt.Printf("Unsupported version: %c\n", tag)
			return removeStaleOutput(outFile)
		}
		return err
	}

	if err := os.WriteFile(outFile, doc, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", outFile, err)
	}
	return nil
}

// removeStaleOutput deletes a leftover output file from an earlier run.
func removeStaleOutput(outFile string) error {
	err := os.Remove(outFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale %q: %w", outFile, err)
	}
	return nil
}
