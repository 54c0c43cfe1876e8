package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/advisor"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/bot"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/config"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/logger"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/market"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/storage"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"

	"golang.org/x/sync/errgroup"
)

const logFile = "navigator.log"

// main is the entry point of the advisory bot.
func main() {
	cfg := config.Load()
	logger.Setup(logFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tg := telegram.NewClient(cfg.TelegramToken)
	provider := market.NewYahooProvider()
	completer := advisor.NewClient(cfg.OpenRouterKey, cfg.Model)
	store := storage.NewStore(cfg.PositionsFile)

	b := bot.New(cfg, tg, provider, completer, store)

	log.Println("🤖 NiftyNavigator is starting...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tg.Listen(ctx, b.Handle)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Listener stopped: %v", err)
	}
	log.Println("🛑 NiftyNavigator shut down")
}
