package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Client проверяет Turnstile-токены через Cloudflare siteverify.
type Client struct {
	verifyURL  string
	secretKey  string
	httpClient *http.Client
}

// NewClient создаёт клиент с серверным секретом.
func NewClient(secretKey string) *Client {
	return &Client{
		verifyURL: defaultVerifyURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify отправляет токен на проверку. Отсутствующий секрет — ошибка
// конфигурации (500), провал проверки и сетевые сбои — провал
// верификации: жалоба без подтверждённого токена не принимается.
func (c *Client) Verify(ctx context.Context, token string) error {
	if c.secretKey == "" {
		return apperror.New(apperror.ErrCodeConfiguration, "Configuration error")
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeVerificationFailed, "Security verification failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeVerificationFailed, "Security verification failed")
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeVerificationFailed, "Security verification failed")
	}

	if !result.Success {
		return apperror.Wrap(
			fmt.Errorf("turnstile: siteverify отклонил токен: %v", result.ErrorCodes),
			apperror.ErrCodeVerificationFailed, "Security verification failed")
	}

	return nil
}
