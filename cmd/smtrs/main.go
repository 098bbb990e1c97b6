package main

import (
	"os"

	"github.com/hguenther/smtrs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
