package redditads

import "net/http"

// Stream describes one API endpoint: where its records live and how they
// replicate. Report streams POST to /reports with a payload derived from
// the stream's schema; list streams GET their path directly.
type Stream struct {
	Name           string
	Path           string
	Method         string
	PrimaryKeys    []string
	ReplicationKey string
	Breakdowns     []string // report streams only
}

func (s Stream) IsReport() bool {
	return s.Method == http.MethodPost
}

// Streams lists every endpoint the syncer replicates, in sync order.
var Streams = []Stream{
	{
		Name:           "business_account",
		Path:           "",
		Method:         http.MethodGet,
		PrimaryKeys:    []string{"id"},
		ReplicationKey: "modified_at",
	},
	{
		Name:           "campaigns",
		Path:           "/campaigns",
		Method:         http.MethodGet,
		PrimaryKeys:    []string{"id"},
		ReplicationKey: "modified_at",
	},
	{
		Name:           "ad_groups",
		Path:           "/ad_groups",
		Method:         http.MethodGet,
		PrimaryKeys:    []string{"id"},
		ReplicationKey: "modified_at",
	},
	{
		Name:           "ads",
		Path:           "/ads",
		Method:         http.MethodGet,
		PrimaryKeys:    []string{"id"},
		ReplicationKey: "modified_at",
	},
	{
		Name:           "reports",
		Path:           "/reports",
		Method:         http.MethodPost,
		PrimaryKeys:    []string{"date", "campaign_id"},
		ReplicationKey: "metrics_updated_at",
		Breakdowns:     []string{"campaign_id", "date"},
	},
	{
		Name:           "ad_report",
		Path:           "/reports",
		Method:         http.MethodPost,
		PrimaryKeys:    []string{"account_id", "ad_id", "date"},
		ReplicationKey: "metrics_updated_at",
		Breakdowns:     []string{"ad_id", "date"},
	},
	{
		Name:           "ad_conversions_report",
		Path:           "/reports",
		Method:         http.MethodPost,
		PrimaryKeys:    []string{"event_name", "account_id", "ad_id", "date"},
		ReplicationKey: "metrics_updated_at",
		Breakdowns:     []string{"event_name", "account_id", "ad_id", "date"},
	},
}
