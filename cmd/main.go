package main

import (
	"log"
	"log/slog"
	"os"

	root "github.com/dinerozz/tabsnoop-backend/cmd/root"
	"github.com/dinerozz/tabsnoop-backend/config"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	config := config.LoadConfig()

	logger := setupLogger(config.Env)
	slog.SetDefault(logger)

	logger.Info("starting tabsnoop backend", slog.String("env", config.Env), slog.String("store", config.Store))

	cmd := root.GetRootCmd(config)

	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"serve"})
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
