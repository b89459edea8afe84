package main

import (
	"os"

	"github.com/wortlab/wortschatz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
