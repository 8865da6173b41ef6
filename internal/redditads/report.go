package redditads

import (
	"strings"
	"time"
)

// The docs say report metrics stabilize within 6 hours, but in practice
// corrections land up to a day later, so every sync re-reads a trailing
// one-day window. The overlap produces duplicate rows across syncs;
// downstream loading dedupes on the stream's primary key.
const finalizationLag = 24 * time.Hour

const reportTimeFormat = "2006-01-02T15:04:05Z"

// ReportPayload is the body of a POST /reports request.
type ReportPayload struct {
	Data ReportRequest `json:"data"`
}

type ReportRequest struct {
	Breakdowns []string `json:"breakdowns"`
	Fields     []string `json:"fields"`
	StartsAt   string   `json:"starts_at"`
	EndsAt     string   `json:"ends_at"`
	TimeZoneID string   `json:"time_zone_id"`
}

// BuildReportPayload derives a report request from the stream's schema and
// the current bookmark. Requested fields are the schema's properties minus
// the breakdown dimensions and metrics_updated_at, uppercased to match the
// API's enum casing. The window runs from one day before the bookmark to
// now, both truncated down to the hour, always in GMT.
func BuildReportPayload(s Stream, bookmark time.Time, now time.Time) (*ReportPayload, error) {
	fields, err := SchemaFields(s.Name)
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{}, len(s.Breakdowns)+1)
	for _, b := range s.Breakdowns {
		exclude[strings.ToLower(b)] = struct{}{}
	}
	exclude["metrics_updated_at"] = struct{}{}

	metrics := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := exclude[f]; ok {
			continue
		}
		metrics = append(metrics, strings.ToUpper(f))
	}

	start := bookmark.UTC().Add(-finalizationLag).Truncate(time.Hour)
	end := now.UTC().Truncate(time.Hour)

	return &ReportPayload{Data: ReportRequest{
		Breakdowns: s.Breakdowns,
		Fields:     metrics,
		StartsAt:   start.Format(reportTimeFormat),
		EndsAt:     end.Format(reportTimeFormat),
		TimeZoneID: "GMT",
	}}, nil
}
