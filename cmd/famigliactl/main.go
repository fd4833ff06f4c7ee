package main

import (
	"context"
	"fmt"
	"os"

	"famigliapp/internal/app"
	"famigliapp/internal/config"
	"famigliapp/internal/logger"
)

var version = "dev"

func main() {
	root := newRootCmd(openApp)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// openApp поднимает то же окружение, что и сервер, но без HTTP и планировщика.
func openApp(ctx context.Context, configPath string) (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.Setup(cfg.Env, "errors.log")

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &services{
		Users:    a.Storage,
		Reminder: a.Reminder,
		Shifts:   a.Calendario,
		Close:    a.Close,
	}, nil
}
