package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"
)

// Handler returns the message handler for the monitoring bot. Only
// recognized commands get a reply; other text is ignored.
func (m *Monitor) Handler(ctx context.Context) telegram.Handler {
	return func(msg telegram.Message) {
		switch strings.TrimSpace(msg.Text) {
		case "/start":
			if err := m.Start(ctx, msg.ChatID); err != nil {
				log.Printf("Monitor start failed: %v", err)
				m.reply(msg.ChatID, "⚠️ Couldn't start monitoring. Try again.")
				return
			}
			m.reply(msg.ChatID, fmt.Sprintf("📊 Monitoring started. Alerts every %d min.", m.cfg.MonitorIntervalMins))
		case "/stop", "/bye", "/done":
			if err := m.Stop(); err != nil {
				log.Printf("Monitor stop failed: %v", err)
			}
			m.reply(msg.ChatID, "🛑 Monitoring stopped.")
		case "/id":
			if err := m.sender.SendMarkdown(msg.ChatID,
				fmt.Sprintf("🆔 Your Telegram chat ID is:\n`%d`", msg.ChatID)); err != nil {
				log.Printf("Reply failed for chat %d: %v", msg.ChatID, err)
			}
		case "/positions":
			m.reply(msg.ChatID, m.positionsReport(ctx))
		}
	}
}

// positionsReport lists tracked positions with their current change where a
// price is available.
func (m *Monitor) positionsReport(ctx context.Context) string {
	positions := m.store.Load()
	if len(positions) == 0 {
		return "No positions tracked. Record one with \"I buy SYMBOL\" in the advisory chat."
	}

	var sb strings.Builder
	sb.WriteString("📋 Tracked positions:\n")
	for _, p := range positions {
		current, err := m.provider.LatestPrice(ctx, p.Symbol)
		if err != nil {
			fmt.Fprintf(&sb, "• %s: entry ₹%s (price unavailable)\n", p.Symbol, p.EntryPrice.StringFixed(2))
			continue
		}
		change, _ := Classify(p.EntryPrice, current, m.upPct, m.downPct)
		fmt.Fprintf(&sb, "• %s: entry ₹%s, now ₹%s (%s%%)\n",
			p.Symbol, p.EntryPrice.StringFixed(2), current.StringFixed(2), change.StringFixed(2))
	}
	return sb.String()
}

func (m *Monitor) reply(chatID int64, text string) {
	if err := m.sender.SendMessage(chatID, text); err != nil {
		log.Printf("Reply failed for chat %d: %v", chatID, err)
	}
}
