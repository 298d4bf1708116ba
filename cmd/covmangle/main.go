package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/covmangle/cmd/covmangle/app"
)

func main() {
	if err := app.NewMangleCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
