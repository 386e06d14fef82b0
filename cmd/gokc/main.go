// Terminal client for ChatKC servers.
package main

import (
	"context"
	"flag"
	"sync"

	"go.uber.org/zap"

	"github.com/chatkc/gokc/internal/config"
	"github.com/chatkc/gokc/internal/logging"
	"github.com/chatkc/gokc/internal/ui"
	"github.com/chatkc/gokc/pkg/protocol"
	"github.com/chatkc/gokc/pkg/socket"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to the configuration file")
	serverOverride := flag.String("server", "", "Override the configured server host")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewConsole().Fatal("Failed to load configuration", zap.Error(err))
	}
	if *serverOverride != "" {
		cfg.Server = *serverOverride
	}

	logger := logging.New(cfg.LogFile)
	defer logger.Sync()

	supervisor := socket.NewSupervisor(protocol.GoogleAuth(cfg.Token), cfg.Server, socket.Options{
		QueueCapacity: cfg.OutboundBuffer,
		RetryMin:      cfg.ReconnectDelay.Duration,
		RetryMax:      cfg.ReconnectDelay.Duration,
		Logger:        logger,
	})

	app := ui.New(cfg.Server, cfg.Timestamp, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		supervisor.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-supervisor.Events():
				app.HandleEvent(ev)
			}
		}
	}()

	if err := app.Run(); err != nil {
		logger.Error("UI terminated with error", zap.Error(err))
	}
	cancel()
	wg.Wait()
}
