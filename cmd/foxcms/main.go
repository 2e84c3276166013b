package main

import (
	"os"

	"github.com/ManuelReschke/foxcms/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
