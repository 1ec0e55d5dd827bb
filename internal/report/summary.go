package report

import (
	"sort"
	"time"

	"github.com/phrazzld/taskquery-api/internal/domain"
)

// StatusCount is the number of tasks with one status.
type StatusCount struct {
	Status string `json:"status" yaml:"status"`
	Count  int    `json:"count"  yaml:"count"`
}

// Summary is the aggregated report.
type Summary struct {
	Title       string        `json:"title"        yaml:"title"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Source      string        `json:"source"       yaml:"source"`
	Fetched     int           `json:"fetched"      yaml:"fetched"`
	Included    int           `json:"included"     yaml:"included"`
	Counts      []StatusCount `json:"counts"       yaml:"counts"`
}

// DefaultTitle is the report heading.
const DefaultTitle = "Task Count by Status"

// Summarize counts rows by status. Rows without a text status or without a
// valid YYYY-MM-DD due date are dropped. Counts are ordered by count,
// largest first, then by status name.
func Summarize(rows []Row, source string, now time.Time) Summary {
	counts := make(map[string]int)
	included := 0
	for _, row := range rows {
		status, ok := row["status"].(string)
		if !ok || status == "" {
			continue
		}
		due, ok := row["due_date"].(string)
		if !ok || !domain.IsValidDate(due) {
			continue
		}
		counts[status]++
		included++
	}

	sorted := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		sorted = append(sorted, StatusCount{Status: status, Count: n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Status < sorted[j].Status
	})

	return Summary{
		Title:       DefaultTitle,
		GeneratedAt: now.UTC(),
		Source:      source,
		Fetched:     len(rows),
		Included:    included,
		Counts:      sorted,
	}
}

// Max returns the largest count, or 0 for an empty summary.
func (s Summary) Max() int {
	if len(s.Counts) == 0 {
		return 0
	}
	return s.Counts[0].Count
}
