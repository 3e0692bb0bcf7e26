package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/sweeper/pkg/api"
	"github.com/cbodonnell/sweeper/pkg/config"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/network"
	"github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/cbodonnell/sweeper/pkg/version"
	"github.com/cbodonnell/sweeper/pkg/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	apiPort := flag.Int("api-port", cfg.APIPort, "API port to listen on")
	wsPort := flag.Int("ws-port", cfg.WSPort, "WebSocket port to listen on")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.NewFromURL(ctx, cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	saveReplayChan := make(chan workers.SaveReplayRequest, cfg.SaveQueueSize)
	saveReplayWorker := workers.NewSaveReplayWorker(workers.NewSaveReplayWorkerOptions{
		Repository:     repository,
		SaveReplayChan: saveReplayChan,
		Timeout:        cfg.SaveTimeout,
	})
	go saveReplayWorker.Start(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:         *apiPort,
		AllowOrigins: cfg.AllowOrigins,
		Repository:   repository,
	}
	wsServerOpts := network.NewWSServerOptions{
		Port:           *wsPort,
		OriginPatterns: cfg.AllowOrigins,
		Repository:     repository,
		SaveReplayChan: saveReplayChan,
		TimerPeriod:    cfg.TimerPeriod,
	}
	if cfg.TLSEnabled() {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
		wsServerOpts.TLS = &network.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}

	apiServer := api.NewAPIServer(apiServerOpts)
	go apiServer.Start()

	wsServer := network.NewWSServer(wsServerOpts)
	go wsServer.Start(ctx)

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
