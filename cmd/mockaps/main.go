package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/api"
	"github.com/mockaps/mockaps/pkg/config"
)

// translationSchedule drives automatic translation job progression in
// stateful mode.
const translationSchedule = "@every 5s"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override environment configuration.
	port := flag.String("port", cfg.Port, "Port to listen on")
	host := flag.String("host", cfg.Host, "Host interface to bind")
	mode := flag.String("mode", string(cfg.Mode), "Server mode: stateless or stateful")
	specDir := flag.String("openapi-dir", cfg.OpenAPIDir, "Directory of OpenAPI specs to serve")
	watch := flag.Bool("watch", cfg.Watch, "Rebuild routes when the spec directory changes")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	cfg.Port = *port
	cfg.Host = *host
	cfg.OpenAPIDir = *specDir
	cfg.Watch = *watch
	cfg.LogLevel = *logLevel
	if cfg.Mode, err = config.ParseMode(*mode); err != nil {
		logrus.Fatalf("Invalid mode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	server, err := api.NewServer(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Mode == config.ModeStateful {
		ticker := cron.New()
		if _, err := ticker.AddFunc(translationSchedule, server.State().Translations.AdvanceAll); err != nil {
			log.Fatalf("Failed to schedule translation progression: %v", err)
		}
		ticker.Start()
		defer ticker.Stop()
	}

	if cfg.Watch {
		go func() {
			if err := server.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("Spec watcher stopped")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr": cfg.Addr(),
			"mode": cfg.Mode,
		}).Info("Starting mock APS server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
