package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiBase = "https://api.telegram.org"

// Sender is the outbound half of the Telegram client. Command routers are
// written against this so tests can record messages instead of sending them.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMarkdown(chatID int64, text string) error
}

// Client talks to the Telegram Bot API over plain HTTP.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: apiBase,
		// Long-poll requests hold the connection open for up to 60s,
		// so the client timeout must exceed that.
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// SendMessage delivers a plain-text message to a chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	return c.send(chatID, text, "")
}

// SendMarkdown delivers a Markdown-formatted message to a chat.
func (c *Client) SendMarkdown(chatID int64, text string) error {
	return c.send(chatID, text, "Markdown")
}

func (c *Client) send(chatID int64, text, parseMode string) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}

	body, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Description string `json:"description"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("telegram API error: status %s: %s", resp.Status, apiErr.Description)
	}
	return nil
}
