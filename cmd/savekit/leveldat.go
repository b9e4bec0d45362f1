package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgeyard/savekit"
	"github.com/forgeyard/savekit/internal/leveldat"
)

var leveldatCmd = &cobra.Command{
	Use:   "leveldat [save_file] [workspace]",
	Short: "Extract and validate level.dat from a zipped save archive",
	Long: `Extract and validate level.dat from a zipped save archive.

The archive is unpacked into the workspace directory, every directory marked
by a level-init.dat file has its level.dat chunk files decompressed and
concatenated to stdout, and the byte count is checked against the
level.datmetadata sidecar. Diagnostics go to stderr.

Attention: the workspace directory is deleted before and after the run,
including anything already in it.

Defaults: save_file "_autosave1.zip", workspace a timestamp-derived name of
the form YYYYMMDD_HHMM_temp_for_leveldat. A size mismatch exits with code 2
and leaves the workspace in place.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runLevelDat,
}

func init() {
	rootCmd.AddCommand(leveldatCmd)
}

func runLevelDat(cmd *cobra.Command, args []string) error {
	saveFile := "_autosave1.zip"
	workspace := leveldat.DefaultWorkspaceName(time.Now())
	if len(args) > 0 {
		saveFile = args[0]
	}
	if len(args) > 1 {
		workspace = args[1]
	}

	client, err := savekit.New(savekit.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	report, err := client.ExtractLevelDat(cmd.Context(), saveFile, workspace, os.Stdout)
	if err != nil {
		return err
	}

	if len(report.Dirs) == 0 {
		fmt.Fprintln(os.Stderr, "no level-init.dat found in archive")
		return nil
	}
	for _, dir := range report.Dirs {
		fmt.Fprintf(os.Stderr, "The file size is correct %d = %d\n", dir.Bytes, dir.Bytes)
	}
	return nil
}
