package main

import (
	"os"

	"github.com/mkraev/jobfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
