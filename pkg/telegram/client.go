package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDelivery indicates the Telegram API rejected or never received the
// message.
var ErrDelivery = errors.New("notification delivery failed")

const defaultAPIBaseURL = "https://api.telegram.org"

// Client sends messages through the Telegram Bot API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a Telegram client for the given bot token. An empty
// baseURL selects the public Bot API endpoint.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendMessage delivers an HTML-formatted message to a chat with link
// previews disabled. One attempt, no retry: any non-2xx status wraps
// ErrDelivery.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	payload := sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrDelivery, err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: telegram returned status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}
