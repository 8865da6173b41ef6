package redditads

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// SchemaFields returns the property names declared in the stream's JSON
// schema, sorted for deterministic request bodies.
func SchemaFields(stream string) ([]string, error) {
	data, err := schemasFS.ReadFile("schemas/" + stream + ".json")
	if err != nil {
		return nil, fmt.Errorf("read schema for %s: %w", stream, err)
	}

	var schema struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema for %s: %w", stream, err)
	}

	fields := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return fields, nil
}
