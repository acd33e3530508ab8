package main

import (
	"os"

	"github.com/dissectlabs/dissect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
