package testutils

import (
	"encoding/json"

	"github.com/phrazzld/taskquery-api/internal/domain"
)

// TaskPayload builds a creation payload as decoded from JSON. A nil due
// leaves due_date out.
func TaskPayload(title, status string, due any) map[string]any {
	p := map[string]any{
		"title":       title,
		"description": title + " details",
		"status":      status,
	}
	if due != nil {
		p["due_date"] = due
	}
	return p
}

// RecordOf converts a stored task into the record a model would echo back.
func RecordOf(t domain.Task) domain.QueryRecord {
	r := domain.QueryRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
	if t.DueDate != nil {
		due := t.DueDate.String()
		r.DueDate = &due
	}
	return r
}

// QueryAnswer renders records as a well-formed model answer.
func QueryAnswer(records ...domain.QueryRecord) string {
	if records == nil {
		records = []domain.QueryRecord{}
	}
	b, err := json.Marshal(domain.QueryResult{Tasks: records})
	if err != nil {
		panic(err)
	}
	return string(b)
}
