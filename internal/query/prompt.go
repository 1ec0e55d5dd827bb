package query

// DefaultPromptTemplate is the instruction given to the model when no custom
// template is configured. Templates receive promptData.
const DefaultPromptTemplate = `You are a task management assistant. Given a natural language query and a list of tasks, return a JSON response with the filtered tasks that match the query. If no tasks match, return an empty list.

Query: {{.Query}}
Tasks:
{{- range .Tasks}}
{{.}}
{{- else}}
(no tasks)
{{- end}}

Return format:
{
    "tasks": [
        {"id": "task_id", "title": "task_title", "description": "task_description", "status": "task_status", "due_date": "YYYY-MM-DD"}
    ]
}

Use "None" for due_date when a task has no due date. Respond with the JSON object only, without commentary or Markdown.
`

// NoneMarker is how an unset due date is written in prompts, and one of the
// ways the model may report it back.
const NoneMarker = "None"

// promptData is the data passed to the prompt template.
type promptData struct {
	Query string
	// Tasks holds one rendered line per task, in snapshot order.
	Tasks []string
}
