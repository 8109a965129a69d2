package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client клиент SMS-шлюза
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS-шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: nopMetrics{},
		log:     log,
	}
}

// WithMetrics включает учет неудачных вызовов
func (c *Client) WithMetrics(m Metrics) *Client {
	if m != nil {
		c.metrics = m
	}
	return c
}

// Send отправляет сообщение. Успехом считается только статус Enroute
func (c *Client) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sms", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("SMS: send failed: %v", err)
		c.metrics.ObserveUpstreamError("sms", "send")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	status, detail := parseStatus(raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || status != StatusEnroute {
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		c.log.Warn("SMS: gateway returned http=%d status=%q: %s", resp.StatusCode, status, detail)
		c.metrics.ObserveUpstreamError("sms", "send")
		return fmt.Errorf("%w: http %d, status %q: %s", ErrNotAccepted, resp.StatusCode, status, detail)
	}

	c.log.Info("SMS: message enroute to %s", msg.PhoneNumber[:min(4, len(msg.PhoneNumber))]+"***")
	return nil
}
