package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/liangmanlin/readline"

	"github.com/pgex-go/pgex"
	"github.com/pgex-go/pgex/internal/demo"
)

// runInspect loads one document and opens an interactive prompt for
// browsing its sections: "header", "blocks", "backgrounds", or "quit".
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) != 1 {
		return fmt.Errorf("usage: pgexfmt inspect <file>")
	}

	f, err := os.Open(paths[0])
	if err != nil {
		return err
	}
	var doc demo.Document
	schema := demo.FileSchema(&doc)
	loadErr := schema.LoadReader(f, pgex.LoadCallbacks{})
	f.Close()
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", loadErr)
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("header"),
		readline.PcItem("blocks"),
		readline.PcItem("backgrounds"),
		readline.PcItem("quit"),
	)

	l, err := readline.NewEx(&readline.Config{
		Prompt:          paths[0] + "> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "header":
			fmt.Printf("%+v\n", doc.Header)
		case "blocks":
			for i, b := range doc.Blocks {
				fmt.Printf("[%d] %+v\n", i, b)
			}
			fmt.Printf("(%d blocks)\n", len(doc.Blocks))
		case "backgrounds":
			for i, b := range doc.Backgrounds {
				fmt.Printf("[%d] %+v\n", i, b)
			}
			fmt.Printf("(%d backgrounds)\n", len(doc.Backgrounds))
		default:
			fmt.Println("unknown command; try: header, blocks, backgrounds, quit")
		}
	}
}
