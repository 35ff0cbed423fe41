package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("airtable: not configured")

// APIError is a non-2xx answer from Airtable.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("airtable: status %d: %s", e.Status, e.Body)
}

type Config struct {
	APIKey        string
	BaseID        string
	TableName     string
	BaseURL       string
	Timeout       time.Duration
	MaxRetryDelay time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	observe    func(status int, d time.Duration)
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	// backoff treats a zero MaxElapsedTime as "retry forever".
	if cfg.MaxRetryDelay <= 0 {
		cfg.MaxRetryDelay = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// OnRequest registers a hook called after every HTTP round trip.
func (c *Client) OnRequest(fn func(status int, d time.Duration)) {
	c.observe = fn
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.BaseID != ""
}

type createRequest struct {
	Records []record `json:"records"`
}

type record struct {
	Fields Fields `json:"fields"`
}

// CreateRecord creates one row and returns Airtable's raw JSON answer.
// Only rate limiting (429) is retried: the request was rejected before any
// row was written, so a retry cannot duplicate the lead.
func (c *Client) CreateRecord(ctx context.Context, fields Fields) (json.RawMessage, error) {
	const operation = "airtable.CreateRecord"

	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(createRequest{Records: []record{{Fields: fields}}})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", operation, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		c.cfg.BaseID,
		url.PathEscape(c.cfg.TableName))

	var result json.RawMessage
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("do request: %w", err))
		}
		defer resp.Body.Close()
		if c.observe != nil {
			c.observe(resp.StatusCode, time.Since(start))
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read response: %w", err))
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return &APIError{Status: resp.StatusCode, Body: string(raw)}
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return backoff.Permanent(&APIError{Status: resp.StatusCode, Body: string(raw)})
		}
		result = raw
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = c.cfg.MaxRetryDelay

	err = backoff.RetryNotify(attempt, backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			c.logger.Warn("Airtable rate limited, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return result, nil
}
