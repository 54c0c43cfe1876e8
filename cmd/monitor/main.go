package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/config"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/logger"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/market"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/monitor"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/storage"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"

	"golang.org/x/sync/errgroup"
)

const logFile = "monitor.log"

// main is the entry point of the monitoring bot.
func main() {
	cfg := config.Load()
	logger.Setup(logFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tg := telegram.NewClient(cfg.TelegramToken)
	provider := market.NewYahooProvider()
	store := storage.NewStore(cfg.PositionsFile)
	session := storage.NewSession(cfg.ChatIDFile, cfg.FlagFile)

	m := monitor.New(cfg, store, session, provider, tg)

	// A marker left behind by a previous run means monitoring was active
	// when the process died; pick up where it left off.
	m.Resume(ctx)

	log.Println("📊 Monitor bot is starting...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tg.Listen(ctx, m.Handler(ctx))
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Listener stopped: %v", err)
	}
	log.Println("🛑 Monitor bot shut down")
}
