package redditads

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	tokenEndpoint = "https://www.reddit.com/api/v1/access_token"
	tokenTimeout  = 60 * time.Second
)

// Credentials identify the Reddit app and account on whose behalf the
// syncer runs. Immutable for the process lifetime.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	UserAgent    string
}

// Authenticator exchanges the long-lived refresh token for short-lived
// bearer tokens and refreshes them on expiry. Safe for concurrent callers:
// the refresh-and-read sequence holds an exclusive lock.
type Authenticator struct {
	httpClient *http.Client
	endpoint   string
	creds      Credentials
	logger     *slog.Logger

	mu            sync.Mutex
	accessToken   string
	expiresIn     time.Duration // zero means the token never expires
	lastRefreshed time.Time
}

func NewAuthenticator(creds Credentials, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		httpClient: &http.Client{Timeout: tokenTimeout},
		endpoint:   tokenEndpoint,
		creds:      creds,
		logger:     logger,
	}
}

// Token returns a valid bearer token, refreshing it first if the current
// one is expired or was never fetched.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.valid() {
		return a.accessToken, nil
	}
	if err := a.refresh(ctx); err != nil {
		return "", err
	}
	return a.accessToken, nil
}

func (a *Authenticator) valid() bool {
	if a.accessToken == "" {
		return false
	}
	if a.expiresIn == 0 {
		return true
	}
	return time.Since(a.lastRefreshed) < a.expiresIn
}

func (a *Authenticator) refresh(ctx context.Context) error {
	requestTime := time.Now().UTC()

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", a.creds.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(a.creds.ClientID + ":" + a.creds.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("User-Agent", a.creds.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return &MalformedResponseError{Path: a.endpoint, Reason: "no access_token in token response"}
	}

	a.accessToken = token.AccessToken
	a.expiresIn = time.Duration(token.ExpiresIn) * time.Second
	a.lastRefreshed = requestTime

	if token.ExpiresIn == 0 {
		a.logger.Debug("no expires_in in token response, treating token as non-expiring")
	}
	a.logger.Info("refreshed access token", "expires_in", a.expiresIn)

	return nil
}
