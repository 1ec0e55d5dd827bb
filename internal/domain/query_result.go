package domain

// QueryRecord is a task-shaped record returned by a natural-language query.
// Its values come from the language model and are not checked against the
// store; Status is therefore kept as plain text.
type QueryRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
}

// QueryResult is the validated answer to a natural-language query.
type QueryResult struct {
	Tasks []QueryRecord `json:"tasks"`
}

// NewQueryResult wraps records in a QueryResult. A nil slice becomes an empty
// one so the result always serializes as a list.
func NewQueryResult(records []QueryRecord) QueryResult {
	if records == nil {
		records = []QueryRecord{}
	}
	return QueryResult{Tasks: records}
}

// Len returns the number of records in the result.
func (r QueryResult) Len() int {
	return len(r.Tasks)
}
