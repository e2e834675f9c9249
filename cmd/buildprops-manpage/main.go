package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/buildprops/cmd/buildprops"
)

func main() {
	rootCmd := buildprops.NewRootCmd()

	err := doc.GenMan(rootCmd, buildprops.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
