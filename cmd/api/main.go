package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"projectTracker/internal/app"
	"projectTracker/internal/config"
	"projectTracker/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.Flags("project-tracker")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	if printConfig, _ := flags.GetBool("print-config"); printConfig {
		return cfg.Dump(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		application.Shutdown()
		return err
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Приложение остановлено с ошибкой", err)
		return err
	}
	return nil
}
