// Package main provides the savekit CLI tool for packing blueprint export
// strings and unpacking level.dat content from save archives.
package main

import (
	"errors"
	"os"

	"github.com/forgeyard/savekit/internal/leveldat"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A size mismatch is a data-integrity failure with its own exit code.
		var mismatch *leveldat.SizeMismatchError
		if errors.As(err, &mismatch) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
