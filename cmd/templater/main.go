package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/templater/pkg/report"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, report.RenderError(err, report.IsTerminal(os.Stderr)))
		os.Exit(1)
	}
}
