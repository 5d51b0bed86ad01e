package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pgex-go/pgex"
	"github.com/pgex-go/pgex/internal/config"
	"github.com/pgex-go/pgex/internal/demo"
	"github.com/pgex-go/pgex/internal/logging"
	"github.com/pgex-go/pgex/internal/metrics"
	"github.com/pgex-go/pgex/internal/report"
)

type server struct {
	logger  zerolog.Logger
	metrics *metrics.Collector
	reports *report.Store
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "pgexfmt.yaml", "path to configuration file")
	fs.Parse(args)

	logger := logging.New()

	holder, err := config.NewHolder(*configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := holder.Watch(); err != nil {
		logger.Warn().Err(err).Msg("config hot reload disabled")
	}
	defer holder.Stop()

	cfg := holder.Get()

	reports, err := report.Open(cfg.Report.DSN)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer reports.Close()

	srv := &server{
		logger:  logger,
		metrics: metrics.New(),
		reports: reports,
	}

	r := chi.NewRouter()
	r.Use(srv.requestID)
	r.Get("/healthz", srv.handleHealthz)
	r.Post("/validate", srv.handleValidate)
	r.Post("/canonicalize", srv.handleCanonicalize)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().Str("addr", addr).Msg("pgexfmt serve listening")
	return httpServer.ListenAndServe()
}

type requestIDKey struct{}

func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	var doc demo.Document
	schema := demo.FileSchema(&doc)
	loadErr := schema.LoadReader(bytes.NewReader(body), pgex.LoadCallbacks{})
	s.metrics.LoadDuration.WithLabelValues("pgex").Observe(time.Since(start).Seconds())
	s.metrics.LoadsTotal.WithLabelValues("pgex").Inc()

	if loadErr != nil {
		s.metrics.LoadErrors.WithLabelValues("pgex").Inc()
		if ffe, ok := loadErr.(*pgex.FileFormatsError); ok {
			s.recordFailure(r, ffe)
		}
		http.Error(w, loadErr.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "valid: %d blocks, %d backgrounds\n", len(doc.Blocks), len(doc.Backgrounds))
}

func (s *server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc demo.Document
	schema := demo.FileSchema(&doc)
	if err := schema.LoadReader(bytes.NewReader(body), pgex.LoadCallbacks{}); err != nil {
		if ffe, ok := err.(*pgex.FileFormatsError); ok {
			s.recordFailure(r, ffe)
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	start := time.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err = schema.SaveWriter(w, pgex.SaveCallbacks{})
	s.metrics.SaveDuration.WithLabelValues("pgex").Observe(time.Since(start).Seconds())
	s.metrics.SavesTotal.WithLabelValues("pgex").Inc()
	if err != nil {
		s.logger.Error().Err(err).Msg("canonicalize write failed")
	}
}

func (s *server) recordFailure(r *http.Request, ffe *pgex.FileFormatsError) {
	requestID, _ := r.Context().Value(requestIDKey{}).(string)
	if _, err := s.reports.Record(r.Context(), "request:"+requestID, ffe.LineNumber, ffe.LineData, ffe.Error()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record parse failure")
	}
}
