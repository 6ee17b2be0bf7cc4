package main

import (
	"os"

	"github.com/rustyeddy/portfolio/cmd/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
