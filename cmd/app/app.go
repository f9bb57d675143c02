package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/controller"
	"github.com/lazymystic/instafake-go/internal/notify"
	"github.com/lazymystic/instafake-go/internal/request"
	"github.com/lazymystic/instafake-go/internal/store"
)

// App wires the client together: config, logger, API client, stores,
// executor and controller.
func App(cfg *config.Config) (*controller.Controller, *slog.Logger, error) {
	log := newLogger(cfg)

	client, err := api.NewClient(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init API client: %w", err)
	}

	notifier := notify.NewConsoleNotifier(os.Stdout)
	exec := request.NewExecutor(notifier, log)
	session := store.NewSession()
	feed := store.NewFeed()

	ctrl := controller.New(client, client, session, feed, exec, notifier, cfg, log)
	return ctrl, log, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
