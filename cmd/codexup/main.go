package main

import (
	"fmt"
	"os"

	"github.com/codexup/codexup/internal/cmd"
)

// set through ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
