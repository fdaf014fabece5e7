package main

import (
	"os"

	"github.com/finsynth/finsynth/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
