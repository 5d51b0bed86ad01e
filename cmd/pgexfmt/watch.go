package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/pgex-go/pgex"
	"github.com/pgex-go/pgex/internal/demo"
	"github.com/pgex-go/pgex/internal/logging"
	"github.com/pgex-go/pgex/internal/report"
)

var watchedExtensions = map[string]bool{
	".pgex": true,
	".lvlx": true,
	".wldx": true,
	".savx": true,
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dsn := fs.String("report-db", "pgexfmt-report.db", "path to the SQLite parse-failure report database")
	fs.Parse(args)

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	logger := logging.New()

	reports, err := report.Open(*dsn)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer reports.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Info().Str("dir", dir).Msg("watching for changes")
	}

	ctx := context.Background()
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			revalidate(ctx, logger, reports, ev.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func revalidate(ctx context.Context, logger zerolog.Logger, reports *report.Store, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not open changed file")
		return
	}
	defer f.Close()

	var doc demo.Document
	schema := demo.FileSchema(&doc)
	loadErr := schema.LoadReader(f, pgex.LoadCallbacks{})
	if loadErr == nil {
		logger.Info().Str("path", path).Msg("revalidated: ok")
		return
	}

	ffe, ok := loadErr.(*pgex.FileFormatsError)
	if !ok {
		logger.Error().Err(loadErr).Str("path", path).Msg("revalidation failed")
		return
	}

	logger.Warn().Str("path", path).Uint64("line", ffe.LineNumber).Msg("revalidation failed")
	if _, err := reports.Record(ctx, path, ffe.LineNumber, ffe.LineData, ffe.Error()); err != nil {
		logger.Warn().Err(err).Msg("failed to record parse failure")
	}
}
