// Package main provides the lobby server binary: a single HTTP listener
// serving the WebSocket session endpoint and the static client application.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cardtable/lobby/internal/config"
	"github.com/cardtable/lobby/internal/lobby"
	"github.com/cardtable/lobby/internal/observability"
	"github.com/cardtable/lobby/internal/server"
	"github.com/cardtable/lobby/internal/transport/ws"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	registry := lobby.NewRegistry(cfg.Room.Capacity, cfg.Room.IDLength)
	controller := lobby.NewController(registry, cfg.Room.GracePeriod,
		observability.Component(logger, "lobby"))
	wsServer := ws.NewServer(controller, cfg.WS,
		observability.Component(logger, "ws"))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))
	router.Get("/ws", wsServer.HandleWS)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			logger.Info("server listening",
				zap.String("addr", cfg.Server.Addr()),
				zap.String("static_dir", cfg.Server.StaticDir),
			)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		StopFn: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		},
	})

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
