package monitor

import (
	"context"
	"testing"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/telegram"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHandler_StartAndStop(t *testing.T) {
	m, _, session, sender := newTestMonitor(t, nil)
	handler := m.Handler(context.Background())

	handler(telegram.Message{ChatID: 42, Text: "/start"})
	require.True(t, m.Running())
	require.True(t, session.Active())
	require.Contains(t, sender.all()[0], "Monitoring started")

	handler(telegram.Message{ChatID: 42, Text: "/stop"})
	require.False(t, m.Running())
	require.False(t, session.Active())
	require.Contains(t, sender.all()[1], "Monitoring stopped")
}

func TestHandler_StopAliases(t *testing.T) {
	m, _, _, sender := newTestMonitor(t, nil)
	handler := m.Handler(context.Background())

	for _, cmd := range []string{"/stop", "/bye", "/done"} {
		handler(telegram.Message{ChatID: 42, Text: cmd})
	}

	msgs := sender.all()
	require.Len(t, msgs, 3)
	for _, msg := range msgs {
		require.Contains(t, msg, "Monitoring stopped")
	}
}

func TestHandler_IgnoresFreeText(t *testing.T) {
	m, _, _, sender := newTestMonitor(t, nil)
	handler := m.Handler(context.Background())

	handler(telegram.Message{ChatID: 42, Text: "hello there"})
	handler(telegram.Message{ChatID: 42, Text: "/unknown"})

	require.Empty(t, sender.all())
	require.False(t, m.Running())
}

func TestHandler_ID(t *testing.T) {
	m, _, _, sender := newTestMonitor(t, nil)
	handler := m.Handler(context.Background())

	handler(telegram.Message{ChatID: 987, Text: "/id"})

	msgs := sender.all()
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "`987`")
}

func TestHandler_Positions(t *testing.T) {
	m, store, _, sender := newTestMonitor(t, map[string]decimal.Decimal{
		"AAA": decimal.NewFromInt(104),
	})
	handler := m.Handler(context.Background())

	handler(telegram.Message{ChatID: 42, Text: "/positions"})
	require.Contains(t, sender.all()[0], "No positions tracked")

	require.NoError(t, store.Add("AAA", decimal.NewFromInt(100)))
	require.NoError(t, store.Add("ZZZ", decimal.NewFromInt(50)))

	handler(telegram.Message{ChatID: 42, Text: "/positions"})

	report := sender.all()[1]
	require.Contains(t, report, "AAA: entry ₹100.00, now ₹104.00 (4.00%)")
	require.Contains(t, report, "ZZZ: entry ₹50.00 (price unavailable)")
}
