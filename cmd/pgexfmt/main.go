// Command pgexfmt validates, canonicalizes, serves, watches, and browses
// PGEX/MDX documents (level, world-map, and game-save files).
package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "validate":
		err = runValidate(args)
	case "canonicalize":
		err = runCanonicalize(args)
	case "serve":
		err = runServe(args)
	case "watch":
		err = runWatch(args)
	case "inspect":
		err = runInspect(args)
	case "history":
		err = runHistory(args)
	case "version":
		fmt.Printf("pgexfmt %s (commit: %s)\n", version, commit)
		return
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pgexfmt: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pgexfmt %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: pgexfmt <command> [arguments]

commands:
  validate      parse a document and report any errors
  canonicalize  parse a document and rewrite it in canonical form
  serve         run an HTTP server exposing validate/canonicalize/metrics
  watch         re-validate files in a directory as they change
  inspect       browse a document's sections interactively
  history       show recently recorded parse failures
  version       print the build version
`)
}
