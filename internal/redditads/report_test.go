package redditads

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportStream(t *testing.T, name string) Stream {
	t.Helper()
	for _, s := range Streams {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("unknown stream %s", name)
	return Stream{}
}

func TestBuildReportPayload_Fields(t *testing.T) {
	stream := reportStream(t, "reports")
	now := time.Date(2024, 7, 16, 10, 30, 0, 0, time.UTC)
	bookmark := time.Date(2024, 7, 15, 21, 23, 17, 915000000, time.UTC)

	payload, err := BuildReportPayload(stream, bookmark, now)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, field := range payload.Data.Fields {
		seen[field]++
		assert.Equal(t, strings.ToUpper(field), field, "field %s not uppercased", field)
		assert.NotEqual(t, "METRICS_UPDATED_AT", field)
		for _, b := range stream.Breakdowns {
			assert.NotEqual(t, strings.ToUpper(b), field, "breakdown %s requested as metric", b)
		}
	}
	for field, count := range seen {
		assert.Equal(t, 1, count, "field %s requested twice", field)
	}

	assert.Contains(t, payload.Data.Fields, "IMPRESSIONS")
	assert.Contains(t, payload.Data.Fields, "CLICKS")
	assert.Contains(t, payload.Data.Fields, "SPEND")
}

func TestBuildReportPayload_Window(t *testing.T) {
	stream := reportStream(t, "reports")
	now := time.Date(2024, 7, 16, 10, 42, 55, 123, time.UTC)
	bookmark := time.Date(2024, 7, 15, 21, 23, 17, 915000000, time.UTC)

	payload, err := BuildReportPayload(stream, bookmark, now)
	require.NoError(t, err)

	// one day back, truncated to the hour
	assert.Equal(t, "2024-07-14T21:00:00Z", payload.Data.StartsAt)
	assert.Equal(t, "2024-07-16T10:00:00Z", payload.Data.EndsAt)
	assert.Equal(t, "GMT", payload.Data.TimeZoneID)
	assert.Equal(t, []string{"campaign_id", "date"}, payload.Data.Breakdowns)

	starts, err := time.Parse(reportTimeFormat, payload.Data.StartsAt)
	require.NoError(t, err)
	ends, err := time.Parse(reportTimeFormat, payload.Data.EndsAt)
	require.NoError(t, err)
	assert.False(t, ends.Before(starts))
}

func TestBuildReportPayload_NonUTCBookmark(t *testing.T) {
	stream := reportStream(t, "ad_report")
	loc := time.FixedZone("UTC+2", 2*60*60)
	bookmark := time.Date(2024, 7, 15, 23, 59, 59, 0, loc)
	now := time.Date(2024, 7, 16, 12, 0, 0, 0, time.UTC)

	payload, err := BuildReportPayload(stream, bookmark, now)
	require.NoError(t, err)

	// 23:59:59+02:00 is 21:59:59 UTC; minus a day and truncated
	assert.Equal(t, "2024-07-14T21:00:00Z", payload.Data.StartsAt)
}

func TestSchemaFields_AllStreamsHaveSchemas(t *testing.T) {
	for _, stream := range Streams {
		fields, err := SchemaFields(stream.Name)
		require.NoError(t, err, "stream %s", stream.Name)
		assert.NotEmpty(t, fields, "stream %s", stream.Name)
		assert.Contains(t, fields, stream.ReplicationKey, "stream %s", stream.Name)
		for _, b := range stream.Breakdowns {
			assert.Contains(t, fields, b, "stream %s breakdown %s", stream.Name, b)
		}
	}
}

func TestSchemaFields_UnknownStream(t *testing.T) {
	_, err := SchemaFields("nope")
	assert.Error(t, err)
}
