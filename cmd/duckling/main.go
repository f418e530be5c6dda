package main

import (
	"fmt"
	"os"

	"github.com/QtravelPL/duckling/internal/cli"
	"github.com/QtravelPL/duckling/internal/logging"
)

func main() {
	err := cli.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
