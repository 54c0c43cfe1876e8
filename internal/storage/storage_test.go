package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "positions.json"))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	positions := s.Load()
	require.NotNil(t, positions)
	require.Empty(t, positions)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "positions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(path)
	require.Empty(t, s.Load())
}

func TestStore_AddThenLoad(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Add("RELIANCE", decimal.NewFromFloat(2875.40)))

	positions := s.Load()
	require.Len(t, positions, 1)

	p := positions[0]
	require.Equal(t, "RELIANCE", p.Symbol)
	require.True(t, p.EntryPrice.Equal(decimal.NewFromFloat(2875.40)),
		"entry price mismatch: %s", p.EntryPrice)

	// Timestamp must be well-formed RFC3339
	_, err := time.Parse(time.RFC3339, p.Timestamp)
	require.NoError(t, err)
}

func TestStore_AddPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	symbols := []string{"TCS", "INFY", "TCS", "SBIN"}
	for i, sym := range symbols {
		require.NoError(t, s.Add(sym, decimal.NewFromInt(int64(100+i))))
	}

	positions := s.Load()
	require.Len(t, positions, 4)
	for i, sym := range symbols {
		require.Equal(t, sym, positions[i].Symbol)
		require.True(t, positions[i].EntryPrice.Equal(decimal.NewFromInt(int64(100+i))))
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("ITC", decimal.NewFromInt(450)))

	require.NoError(t, s.Clear())
	require.Empty(t, s.Load())

	// Cleared file is still a valid (empty) JSON array on disk.
	b, err := os.ReadFile(s.path)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(b))
}

func TestSession_ChatIDRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sess := NewSession(filepath.Join(dir, ".chatid"), filepath.Join(dir, ".monitor_active"))

	_, ok := sess.ChatID()
	require.False(t, ok)

	require.NoError(t, sess.SaveChatID(123456789))

	id, ok := sess.ChatID()
	require.True(t, ok)
	require.Equal(t, int64(123456789), id)
}

func TestSession_ActivateDeactivate(t *testing.T) {
	dir := t.TempDir()
	sess := NewSession(filepath.Join(dir, ".chatid"), filepath.Join(dir, ".monitor_active"))

	require.False(t, sess.Active())

	require.NoError(t, sess.Activate())
	require.True(t, sess.Active())

	require.NoError(t, sess.Deactivate())
	require.False(t, sess.Active())

	// Deactivating when not active is a no-op, not an error.
	require.NoError(t, sess.Deactivate())
}
