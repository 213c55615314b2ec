package main

import (
	"os"

	"github.com/modfit/modfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
