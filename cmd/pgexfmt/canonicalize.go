package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pgex-go/pgex"
	"github.com/pgex-go/pgex/internal/demo"
)

func runCanonicalize(args []string) error {
	fs := flag.NewFlagSet("canonicalize", flag.ExitOnError)
	out := fs.String("o", "", "output path (default: stdout)")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) != 1 {
		return fmt.Errorf("usage: pgexfmt canonicalize [-o out] <file>")
	}

	f, err := os.Open(paths[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var doc demo.Document
	schema := demo.FileSchema(&doc)
	if err := schema.LoadReader(f, pgex.LoadCallbacks{}); err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	return schema.SaveWriter(w, pgex.SaveCallbacks{})
}
