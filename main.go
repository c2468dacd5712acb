package main

import (
	"os"

	"github.com/stadtwache/stadtwache/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
