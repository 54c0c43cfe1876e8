// Package monitor implements the position-tracking alert loop and the
// commands that control it.
package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/config"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/market"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/storage"
	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"

	"github.com/shopspring/decimal"
)

// Monitor owns the alert loop. The loop is gated by a cancellable context
// rather than by polling the marker file, which makes stop latency
// deterministic; the marker file remains the persisted record so monitoring
// resumes after a process restart.
type Monitor struct {
	cfg      *config.Config
	store    *storage.Store
	session  *storage.Session
	provider market.PriceProvider
	sender   telegram.Sender
	interval time.Duration

	upPct   decimal.Decimal
	downPct decimal.Decimal

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New wires the monitor.
func New(cfg *config.Config, store *storage.Store, session *storage.Session,
	provider market.PriceProvider, sender telegram.Sender) *Monitor {
	return &Monitor{
		cfg:      cfg,
		store:    store,
		session:  session,
		provider: provider,
		sender:   sender,
		interval: time.Duration(cfg.MonitorIntervalMins) * time.Minute,
		upPct:    decimal.NewFromFloat(cfg.UpThresholdPct),
		downPct:  decimal.NewFromFloat(cfg.DownThresholdPct),
	}
}

// Start begins a fresh monitoring window for chatID: record the recipient,
// clear the position list, persist the active marker and (re)launch the
// loop. Starting while already running replaces the previous loop, so there
// is never more than one.
func (m *Monitor) Start(ctx context.Context, chatID int64) error {
	if err := m.session.SaveChatID(chatID); err != nil {
		return fmt.Errorf("record recipient: %w", err)
	}
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear positions: %w", err)
	}
	if err := m.session.Activate(); err != nil {
		return fmt.Errorf("set active flag: %w", err)
	}

	m.launch(ctx)
	return nil
}

// Resume relaunches the loop after a process restart when the marker file
// is still present. Positions and recipient are kept as they were.
func (m *Monitor) Resume(ctx context.Context) {
	if !m.session.Active() {
		return
	}
	if _, ok := m.session.ChatID(); !ok {
		log.Println("Monitor: active flag present but no recipient recorded, not resuming")
		return
	}
	log.Println("Monitor: resuming active session")
	m.launch(ctx)
}

func (m *Monitor) launch(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.run(loopCtx)
}

// Stop cancels the loop and removes the active marker. The recipient and
// position history survive. Stopping when idle is a no-op.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	return m.session.Deactivate()
}

// Running reports whether a loop has been launched and not stopped.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

func (m *Monitor) run(ctx context.Context) {
	log.Printf("Monitor loop started (interval %s)", m.interval)

	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Monitor loop stopped")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one alert cycle: reload positions, price each one, classify
// the change and deliver a combined alert message when any threshold was
// crossed. A failed lookup skips that position and the cycle continues.
func (m *Monitor) Check(ctx context.Context) {
	positions := m.store.Load()
	if len(positions) == 0 {
		return
	}

	var alerts []string
	for _, p := range positions {
		current, err := m.provider.LatestPrice(ctx, p.Symbol)
		if err != nil {
			log.Printf("Price fetch failed for %s, skipping: %v", p.Symbol, err)
			continue
		}

		change, dir := Classify(p.EntryPrice, current, m.upPct, m.downPct)
		log.Printf("%s: Entry ₹%s, Current ₹%s, Change %s%%",
			p.Symbol, p.EntryPrice.StringFixed(2), current.StringFixed(2), change.StringFixed(2))

		switch dir {
		case DirectionUp:
			alerts = append(alerts, fmt.Sprintf("📈 %s up %s%% (₹%s) since entry ₹%s",
				p.Symbol, change.StringFixed(2), current.StringFixed(2), p.EntryPrice.StringFixed(2)))
		case DirectionDown:
			alerts = append(alerts, fmt.Sprintf("📉 %s down %s%% (₹%s) since entry ₹%s",
				p.Symbol, change.StringFixed(2), current.StringFixed(2), p.EntryPrice.StringFixed(2)))
		}
	}

	if len(alerts) == 0 {
		log.Println("No significant movements detected")
		return
	}

	chatID, ok := m.session.ChatID()
	if !ok {
		log.Println("Alerts produced but no recipient recorded, dropping")
		return
	}

	msg := fmt.Sprintf("🚨 Position Alerts (%s):\n\n%s",
		time.Now().Format("15:04"), strings.Join(alerts, "\n"))

	if err := m.sender.SendMessage(chatID, msg); err != nil {
		log.Printf("Alert delivery failed: %v", err)
		return
	}
	log.Printf("Sent %d alert(s)", len(alerts))
}
