package main

import (
	"os"

	"github.com/adeolu/candidate-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
