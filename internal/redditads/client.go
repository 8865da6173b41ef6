package redditads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"redditads_syncer/internal/domain"
)

// Config holds Reddit Ads API client configuration.
type Config struct {
	APIURL         string
	AccountID      string
	UserAgent      string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client fetches records from the Reddit Ads API for one ad account.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	auth           *Authenticator
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func NewClient(cfg Config, auth *Authenticator, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.APIURL + "/" + cfg.AccountID,
		userAgent:      cfg.UserAgent,
		auth:           auth,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}
}

// EmitFunc receives records one at a time as pages arrive. Returning an
// error stops the fetch loop; records already emitted stand.
type EmitFunc func(record domain.Record) error

// FetchAll walks every page of the stream's endpoint, handing each record
// to emit. For report streams the payload is rebuilt fresh for every page;
// only the page.token query parameter varies between requests. A page
// token is consumed by exactly one request.
func (c *Client) FetchAll(ctx context.Context, stream Stream, bookmark time.Time, emit EmitFunc) error {
	pageToken := ""

	for page := 0; ; page++ {
		var payload *ReportPayload
		if stream.IsReport() {
			p, err := BuildReportPayload(stream, bookmark, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("build report payload: %w", err)
			}
			payload = p
		}

		body, err := c.fetchPage(ctx, stream, pageToken, payload)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", page, err)
		}

		records, pagination, err := parseResponse(stream, body)
		if err != nil {
			return err
		}

		for _, record := range records {
			if err := emit(record); err != nil {
				return err
			}
		}

		c.logger.Debug("fetched page",
			"stream", stream.Name,
			"page", page,
			"records", len(records),
		)

		pageToken, err = NextPageToken(pagination)
		if err != nil {
			return err
		}
		if pageToken == "" {
			return nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, stream Stream, pageToken string, payload *ReportPayload) ([]byte, error) {
	var body []byte
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err = c.doRequest(ctx, stream, pageToken, payload)
		if err == nil {
			return body, nil
		}

		if !retryable(err) || attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"stream", stream.Name,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if retryable(err) {
		return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
	}
	return nil, err
}

func (c *Client) doRequest(ctx context.Context, stream Stream, pageToken string, payload *ReportPayload) ([]byte, error) {
	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal report payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, stream.Method, c.baseURL+stream.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if pageToken != "" {
		q := req.URL.Query()
		q.Set("page.token", pageToken)
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Path: stream.Path, Body: string(body)}
	}

	return body, nil
}

// retryable reports whether a request is worth repeating: 429, 5xx, and
// transport-level failures. Auth failures and other 4xx are final.
func retryable(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusTooManyRequests || reqErr.StatusCode >= 500
	}
	var malformed *MalformedResponseError
	return !errors.As(err, &malformed)
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
