package main

import (
	"os"

	"github.com/abhisek/mathbuddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
