package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"tour-booking/logger"
)

// Client delivers one-time codes through the platform mail gateway. When no
// gateway is configured the code is logged instead, which keeps local
// development and the login flow working without the delivery channel.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type sendCodeRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// NewClientFromEnv builds a client from MAIL_GATEWAY_URL.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("MAIL_GATEWAY_URL"))
}

// SendCode delivers a one-time login code to the given address.
func (c *Client) SendCode(ctx context.Context, email, code string) error {
	if c.baseURL == "" {
		// Fallback for environments without a mail gateway.
		logger.Warning(fmt.Sprintf("MAIL_GATEWAY_URL not set, OTP for %s: %s", email, code))
		return nil
	}

	body, err := json.Marshal(sendCodeRequest{
		To:      email,
		Subject: "Your one-time login code",
		Body:    fmt.Sprintf("Your login code is %s. It expires in 10 minutes.", code),
	})
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mail/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail gateway returned status %d", resp.StatusCode)
	}
	return nil
}
