package main

import (
	"os"

	"github.com/ysato/planc/cmd/planc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
