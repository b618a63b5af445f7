package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/gffstruct/cmd/gffstruct"
	"github.com/arthur-debert/gffstruct/pkg/ui/terminal/styles"
)

func main() {
	rootCmd := gffstruct.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Default().Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
