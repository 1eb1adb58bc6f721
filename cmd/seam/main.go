package main

import (
	"os"

	"github.com/arthur-debert/seam/internal/cli"
)

func main() {
	if err := Execute(); err != nil {
		cli.RenderError(err)
		os.Exit(1)
	}
}
