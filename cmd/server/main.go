package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hdr-sequencer/internal/platform/config"
	"hdr-sequencer/internal/platform/logger"
	"hdr-sequencer/internal/platform/metrics"
	"hdr-sequencer/internal/sequencer"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	cfg := config.FromEnv(sequencer.DefaultSwitchRetries)

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
		log.Warn("unknown log level, using info", "log_level", cfg.LogLevel)
	}

	met := metrics.New()
	repo := sequencer.NewInMemoryRepository()
	svc := sequencer.NewService(repo, log, met, cfg.SwitchRetries)
	h := sequencer.NewHandler(svc, log)

	cameras, err := config.LoadCameras(cfg.CamerasFile)
	if err != nil {
		log.Error("load cameras", "error", err)
		os.Exit(1)
	}
	for _, cam := range cameras {
		camCfg, err := svc.Configure(sequencer.CameraID(cam.ID), sequencer.ConfigureRequest{
			Sequence0: cam.Profile0,
			Sequence1: cam.Profile1,
		})
		if err != nil {
			log.Error("configure camera", "camera_id", cam.ID, "error", err)
			os.Exit(1)
		}
		log.Info("camera preconfigured",
			"camera_id", cam.ID,
			"adjusted_profile0", camCfg.Adjusted0,
			"adjusted_profile1", camCfg.Adjusted1,
		)
	}

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetConfiguredCameras(repo.ConfiguredCameraCount()) }).ServeHTTP(w, r)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	h.Routes(r)

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", cfg.Port,
		"switch_retries", cfg.SwitchRetries,
		"cameras", len(cameras),
		"log_level", cfg.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
