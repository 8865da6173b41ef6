package redditads

import (
	"encoding/json"
	"fmt"

	"redditads_syncer/internal/domain"
)

// parseResponse extracts the stream's records and pagination metadata from
// a response body. Report records are augmented with the envelope's
// metrics_updated_at; list records pass through untouched.
func parseResponse(stream Stream, body []byte) ([]domain.Record, Pagination, error) {
	if stream.IsReport() {
		return parseReportResponse(stream, body)
	}
	return parseListResponse(stream, body)
}

func parseListResponse(stream Stream, body []byte) ([]domain.Record, Pagination, error) {
	var env struct {
		Data       json.RawMessage `json:"data"`
		Pagination Pagination      `json:"pagination"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Pagination{}, fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, Pagination{}, &MalformedResponseError{Path: stream.Path, Reason: "missing data key"}
	}

	var records []domain.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		// business_account returns a single object under data
		var single domain.Record
		if err := json.Unmarshal(env.Data, &single); err != nil {
			return nil, Pagination{}, &MalformedResponseError{Path: stream.Path, Reason: "data is neither a list nor an object"}
		}
		records = []domain.Record{single}
	}

	return records, env.Pagination, nil
}

func parseReportResponse(stream Stream, body []byte) ([]domain.Record, Pagination, error) {
	var env struct {
		Data *struct {
			Metrics          []domain.Record `json:"metrics"`
			MetricsUpdatedAt string          `json:"metrics_updated_at"`
		} `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Pagination{}, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return nil, Pagination{}, &MalformedResponseError{Path: stream.Path, Reason: "missing data key"}
	}

	for _, record := range env.Data.Metrics {
		if env.Data.MetricsUpdatedAt != "" {
			record["metrics_updated_at"] = env.Data.MetricsUpdatedAt
		}
	}

	return env.Data.Metrics, env.Pagination, nil
}
