package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
reddit:
  account_id: a1
  client_id: cid
  client_secret: secret
  refresh_token: rt
  user_agent: "web:app:v1 (by /u/tester)"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://ads-api.reddit.com/api/v3/ad_accounts", cfg.Reddit.APIURL)
	assert.Equal(t, "2023-01-01", cfg.Reddit.StartDate)
	assert.Equal(t, 30*time.Second, cfg.Reddit.Timeout)
	assert.Equal(t, 3, cfg.Reddit.Retry.MaxAttempts)
	assert.Equal(t, 1*time.Hour, cfg.Sync.Interval)
	assert.Equal(t, "info", cfg.LogLevel)

	start, err := cfg.Reddit.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_REDDIT_SECRET", "from-env")

	path := writeConfig(t, `
reddit:
  account_id: a1
  client_id: cid
  client_secret: ${TEST_REDDIT_SECRET}
  refresh_token: rt
  user_agent: ua
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Reddit.ClientSecret)
}

func TestValidate_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
reddit:
  account_id: a1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.Contains(t, confErr.Missing, "reddit.client_id")
	assert.Contains(t, confErr.Missing, "reddit.client_secret")
	assert.Contains(t, confErr.Missing, "reddit.refresh_token")
	assert.Contains(t, confErr.Missing, "reddit.user_agent")
	assert.NotContains(t, confErr.Missing, "reddit.account_id")
}

func TestValidate_BadStartDate(t *testing.T) {
	path := writeConfig(t, `
reddit:
  account_id: a1
  client_id: cid
  client_secret: secret
  refresh_token: rt
  user_agent: ua
  start_date: "not-a-date"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestRedditConfig_StartAcceptsRFC3339(t *testing.T) {
	r := RedditConfig{StartDate: "2024-07-15T10:00:00Z"}
	start, err := r.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC), start)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
