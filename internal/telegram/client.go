package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client отправляет уведомления модерации в Telegram-канал.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	topicID    string
	httpClient *http.Client
}

// NewClient создаёт клиент бота. topicID — тред форума внутри чата.
func NewClient(token, chatID, topicID string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		chatID:  chatID,
		topicID: topicID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send публикует текстовое сообщение в настроенный чат/тред.
// Одна попытка без ретраев: деградация канала уведомлений не должна
// ронять отправку жалобы.
func (c *Client) Send(ctx context.Context, text string) error {
	if c.token == "" {
		return fmt.Errorf("telegram: токен бота не задан")
	}
	if c.chatID == "" {
		return fmt.Errorf("telegram: chat_id не задан")
	}

	payload := map[string]any{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if c.topicID != "" {
		payload["message_thread_id"] = c.topicID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: не удалось отправить сообщение: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("telegram: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	return nil
}
