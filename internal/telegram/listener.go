package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Update represents a Telegram Update object (partial schema)
type Update struct {
	UpdateID int `json:"update_id"`
	Message  struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			Username string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

type updateResponse struct {
	Ok          bool     `json:"ok"`
	Result      []Update `json:"result"`
	Description string   `json:"description"`
	ErrorCode   int      `json:"error_code"`
}

// Message is an inbound chat message handed to a Handler.
type Message struct {
	ChatID   int64
	Username string
	Text     string
}

// Handler processes one inbound message. Replies go back through the
// Sender the handler was constructed with.
type Handler func(msg Message)

const (
	longPollTimeout = 60 * time.Second
	errorBackoff    = 5 * time.Second
)

// Listen long-polls getUpdates and dispatches every non-empty text message
// to the handler. It blocks until the context is cancelled.
func (c *Client) Listen(ctx context.Context, handler Handler) error {
	offset := 0
	log.Println("Telegram Listener: Started")

	for {
		if err := ctx.Err(); err != nil {
			log.Println("Telegram Listener: Stopped")
			return err
		}

		url := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d",
			c.baseURL, c.token, offset, int(longPollTimeout.Seconds()))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Telegram Listener Error: %v", err)
			sleep(ctx, errorBackoff)
			continue
		}

		var result updateResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			log.Printf("Telegram Decode Error: %v", err)
			sleep(ctx, errorBackoff)
			continue
		}

		if !result.Ok {
			log.Printf("Telegram API Error: %s (Code: %d)", result.Description, result.ErrorCode)
			sleep(ctx, errorBackoff)
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1

			text := strings.TrimSpace(update.Message.Text)
			if text == "" {
				continue
			}

			handler(Message{
				ChatID:   update.Message.Chat.ID,
				Username: update.Message.From.Username,
				Text:     text,
			})
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
