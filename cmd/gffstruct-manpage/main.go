package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/gffstruct/cmd/gffstruct"
	"github.com/arthur-debert/gffstruct/internal/version"
)

func main() {
	rootCmd := gffstruct.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "GFFSTRUCT",
		Section: "1",
		Source:  "gffstruct " + version.Version,
		Manual:  "gffstruct manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
