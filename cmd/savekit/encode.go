package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgeyard/savekit"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [json_file] [out_file]",
	Short: "Pack a JSON blueprint into an export string",
	Long: `Pack a JSON blueprint into an export string.

The input is parsed with object key order preserved, re-serialized compactly,
zlib-compressed at the chosen level and base64-encoded under version '0'.

Defaults: json_file "all.txt", out_file "out.txt".`,
	Args: cobra.MaximumNArgs(2),
	RunE: runEncode,
}

var encodeLevel int

func init() {
	encodeCmd.Flags().IntVar(&encodeLevel, "level", 9, "zlib compression level (1-9)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	jsonFile, outFile := "all.txt", "out.txt"
	if len(args) > 0 {
		jsonFile = args[0]
	}
	if len(args) > 1 {
		outFile = args[1]
	}

	client, err := savekit.New(
		savekit.WithLogger(newLogger()),
		savekit.WithCompressionLevel(encodeLevel),
	)
	if err != nil {
		return err
	}

	jsonText, err := os.ReadFile(jsonFile)
	if err != nil {
		return fmt.Errorf("reading %q: %w", jsonFile, err)
	}

	export, err := client.Encode(jsonText)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outFile, []byte(export), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", outFile, err)
	}
	return nil
}
