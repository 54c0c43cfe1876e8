// Package bot implements the advisory command router: usage help,
// "I buy SYMBOL" position recording, and the ₹amount @ percent% two-stage
// recommendation flow.
package bot

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/advisor"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/config"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/market"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/storage"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"
)

var buyPattern = regexp.MustCompile(`(?i)^I buy\s+([A-Za-z.]+)$`)

// Bot routes advisory chat messages.
type Bot struct {
	cfg       *config.Config
	sender    telegram.Sender
	provider  market.PriceProvider
	completer advisor.Completer
	store     *storage.Store
}

// New wires the advisory router.
func New(cfg *config.Config, sender telegram.Sender, provider market.PriceProvider,
	completer advisor.Completer, store *storage.Store) *Bot {
	return &Bot{
		cfg:       cfg,
		sender:    sender,
		provider:  provider,
		completer: completer,
		store:     store,
	}
}

// Handle processes one inbound message.
func (b *Bot) Handle(msg telegram.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start":
		b.reply(msg.ChatID,
			"👋 Welcome to NiftyNavigator!\n"+
				"Send: ₹<amount> @ <percent>% (e.g., ₹20000 @ 3%)")
	case text == "/help":
		b.reply(msg.ChatID,
			"Format: ₹<amount> @ <percent>% (e.g., ₹20000 @ 3%).\n"+
				"I'll recommend 5 liquid NSE/BSE stocks intraday.")
	case text == "/id":
		if err := b.sender.SendMarkdown(msg.ChatID,
			fmt.Sprintf("🆔 Your Telegram chat ID is:\n`%d`", msg.ChatID)); err != nil {
			log.Printf("Reply failed for chat %d: %v", msg.ChatID, err)
		}
	case buyPattern.MatchString(text):
		b.handleBuy(msg.ChatID, text)
	default:
		b.handleAdviceRequest(msg.ChatID, text)
	}
}

// handleBuy records a purchase at the latest traded price.
func (b *Bot) handleBuy(chatID int64, text string) {
	m := buyPattern.FindStringSubmatch(text)
	symbol := strings.ToUpper(m[1])

	price, err := b.provider.LatestPrice(context.Background(), symbol)
	if err != nil {
		log.Printf("Price fetch failed for %s: %v", symbol, err)
		b.reply(chatID, fmt.Sprintf("⚠️ Couldn't fetch price for %s. Check symbol and try again.", symbol))
		return
	}

	if err := b.store.Add(symbol, price); err != nil {
		log.Printf("Failed to record position %s: %v", symbol, err)
		b.reply(chatID, fmt.Sprintf("⚠️ Couldn't record %s. Try again.", symbol))
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Recorded %s at ₹%s. I'll watch this position!", symbol, price.StringFixed(2)))
}

// handleAdviceRequest is the fallback for all other free text: parse the
// investment plan and run the two-stage recommendation flow.
func (b *Bot) handleAdviceRequest(chatID int64, text string) {
	plan, ok := advisor.ParsePlan(text)
	if !ok {
		b.reply(chatID, "❌ Couldn't parse input. Use: ₹<amount> @ <percent>%")
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Received: ₹%d, target: %s%%\nFetching top 5 picks...",
		plan.Amount, plan.Percent))

	advice, err := advisor.Advise(context.Background(), b.completer, plan)
	if err != nil {
		log.Printf("Advice flow failed: %v", err)
		b.reply(chatID, "⚠️ Sorry, couldn't fetch recommendations. Try again later.")
		return
	}

	b.reply(chatID, advisor.FormatAdvice(plan, advice))
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.sender.SendMessage(chatID, text); err != nil {
		log.Printf("Reply failed for chat %d: %v", chatID, err)
	}
}
