package query

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/taskquery-api/internal/domain"
)

// Translator renders the instruction handed to the language model.
type Translator struct {
	tmpl *template.Template
}

// NewTranslator parses templateText. An empty templateText selects
// DefaultPromptTemplate.
func NewTranslator(templateText string) (*Translator, error) {
	if strings.TrimSpace(templateText) == "" {
		templateText = DefaultPromptTemplate
	}
	tmpl, err := template.New("task_query").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return &Translator{tmpl: tmpl}, nil
}

// LoadTranslator reads a template from path. An empty path selects
// DefaultPromptTemplate.
func LoadTranslator(path string) (*Translator, error) {
	if path == "" {
		return NewTranslator("")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidTemplate, path, err)
	}
	return NewTranslator(string(content))
}

// Translate builds the instruction for query over tasks. The output depends
// only on its inputs.
func (t *Translator) Translate(query string, tasks []domain.Task) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	data := promptData{
		Query: query,
		Tasks: make([]string, 0, len(tasks)),
	}
	for _, task := range tasks {
		data.Tasks = append(data.Tasks, RenderTask(task))
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// RenderTask writes a task as a single prompt line with a fixed field order.
func RenderTask(task domain.Task) string {
	due := NoneMarker
	if task.DueDate != nil {
		due = task.DueDate.String()
	}
	return fmt.Sprintf("ID: %s, Title: %s, Description: %s, Status: %s, Due Date: %s",
		oneLine(task.ID),
		oneLine(task.Title),
		oneLine(task.Description),
		oneLine(string(task.Status)),
		due)
}

// oneLine collapses line breaks so each task stays on its own line.
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
