package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"modlaunch/examples/services/redactor"
	"modlaunch/internal/config"
	"modlaunch/internal/launcher"
	"modlaunch/internal/logging"
	"modlaunch/internal/service"
)

func main() {
	cfgPath := flag.String("config", "launcher.yml", "path to launcher config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.InitFromEnv()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.LogLevel != "" || cfg.LogJSON {
		logging.Configure(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	}

	service.Register("redactor", redactor.New)

	l, err := launcher.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer l.Close()

	resources, err := l.Run(ctx, service.LayerMap{})
	if err != nil {
		log.Fatalf("launcher: %v", err)
	}

	logging.L().Info("startup complete",
		"transformers", l.Store().Len(), "resources", len(resources))
}
