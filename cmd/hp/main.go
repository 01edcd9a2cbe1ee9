package main

import (
	"os"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
