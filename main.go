package main

import (
	"os"

	"github.com/registrarlab/regsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
