package main

import (
	"os"

	"github.com/mcgarrah/gpcdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
