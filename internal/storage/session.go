package storage

import (
	"os"
	"strconv"
	"strings"
)

// Session holds the monitoring session state that must survive a restart:
// the alert recipient's chat id (plain-text file) and the active flag
// (presence of a marker file).
//
// Stopping monitoring removes the marker only; the recipient survives so a
// later /start delivers to the same chat without re-registration.
type Session struct {
	chatIDPath string
	flagPath   string
}

// NewSession creates a Session backed by the two given file paths.
func NewSession(chatIDPath, flagPath string) *Session {
	return &Session{chatIDPath: chatIDPath, flagPath: flagPath}
}

// SaveChatID records the alert recipient.
func (s *Session) SaveChatID(chatID int64) error {
	return os.WriteFile(s.chatIDPath, []byte(strconv.FormatInt(chatID, 10)), 0644)
}

// ChatID returns the recorded recipient, or false when none is recorded
// or the file contents are not a valid id.
func (s *Session) ChatID() (int64, bool) {
	b, err := os.ReadFile(s.chatIDPath)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Activate creates the marker file signalling that monitoring is on.
func (s *Session) Activate() error {
	f, err := os.OpenFile(s.flagPath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Deactivate removes the marker. Removing an absent marker is a no-op.
func (s *Session) Deactivate() error {
	err := os.Remove(s.flagPath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active reports whether the marker file exists.
func (s *Session) Active() bool {
	_, err := os.Stat(s.flagPath)
	return err == nil
}
