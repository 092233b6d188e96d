package main

import (
	"os"

	"github.com/iburimskiy/portfolio-backdrop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
