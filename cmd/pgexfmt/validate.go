package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pgex-go/pgex"
	"github.com/pgex-go/pgex/internal/demo"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("usage: pgexfmt validate <file> [file ...]")
	}

	failed := false
	for _, path := range paths {
		if err := validateFile(path); err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		return fmt.Errorf("one or more documents failed to validate")
	}
	return nil
}

func validateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var doc demo.Document
	schema := demo.FileSchema(&doc)
	return schema.LoadReader(f, pgex.LoadCallbacks{})
}
