package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pgex-go/pgex/internal/report"
)

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dsn := fs.String("report-db", "pgexfmt-report.db", "path to the SQLite parse-failure report database")
	path := fs.String("path", "", "only show failures for this file path")
	limit := fs.Int("limit", 20, "maximum number of entries to show")
	fs.Parse(args)

	store, err := report.Open(*dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), *path, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no recorded parse failures")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-24s  line %-5d  %s\n", e.OccurredAt.Format("2006-01-02T15:04:05Z"), e.Path, e.LineNumber, e.Message)
	}
	return nil
}
