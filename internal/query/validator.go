package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/taskquery-api/internal/domain"
)

// requiredRecordFields must be present as non-empty strings on every record.
var requiredRecordFields = []string{"id", "title", "description", "status"}

// Validate interprets a raw model answer as a QueryResult.
//
// Empty or whitespace-only text means nothing matched and yields an empty
// result. Otherwise the text must be exactly one JSON object of the form
// {"tasks": [...]}, optionally wrapped in a single Markdown code fence.
// Any deviation is reported as a *ResultError and no records are returned.
func Validate(raw string) (domain.QueryResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.NewQueryResult(nil), nil
	}
	if !utf8.ValidString(text) {
		return domain.QueryResult{}, parseFailure("answer is not valid UTF-8")
	}
	if text = stripCodeFence(text); text == "" {
		return domain.QueryResult{}, parseFailure("empty code block")
	}

	value, err := decodeStrict(text)
	if err != nil {
		return domain.QueryResult{}, parseFailure(err.Error())
	}

	records, err := checkSchema(value)
	if err != nil {
		return domain.QueryResult{}, err
	}
	return domain.NewQueryResult(records), nil
}

// decodeStrict decodes exactly one JSON value from text.
func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON value")
	}
	return value, nil
}

// stripCodeFence removes one surrounding ``` fence, with or without a
// language tag. Text that is not fenced is returned unchanged.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	newline := strings.IndexByte(inner, '\n')
	if newline < 0 {
		return strings.TrimSpace(inner)
	}
	// The first line may only carry a language tag such as "json".
	if tag := strings.TrimSpace(inner[:newline]); strings.ContainsAny(tag, "{[\"") {
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(inner[newline+1:])
}

func checkSchema(value any) ([]domain.QueryRecord, error) {
	root, ok := value.(map[string]any)
	if !ok {
		return nil, schemaViolation("", fmt.Sprintf("expected a JSON object, got %s", jsonType(value)))
	}

	rawTasks, ok := root["tasks"]
	if !ok {
		return nil, schemaViolation("tasks", "is required")
	}
	items, ok := rawTasks.([]any)
	if !ok {
		return nil, schemaViolation("tasks", fmt.Sprintf("must be a list, got %s", jsonType(rawTasks)))
	}

	records := make([]domain.QueryRecord, 0, len(items))
	for i, item := range items {
		record, err := checkRecord(fmt.Sprintf("tasks[%d]", i), item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func checkRecord(path string, item any) (domain.QueryRecord, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return domain.QueryRecord{}, schemaViolation(path, fmt.Sprintf("must be an object, got %s", jsonType(item)))
	}

	fields := make(map[string]string, len(requiredRecordFields))
	for _, name := range requiredRecordFields {
		fieldPath := path + "." + name
		v, present := obj[name]
		if !present || v == nil {
			return domain.QueryRecord{}, schemaViolation(fieldPath, "is required")
		}
		s, isString := v.(string)
		if !isString {
			return domain.QueryRecord{}, schemaViolation(fieldPath, fmt.Sprintf("must be a string, got %s", jsonType(v)))
		}
		if strings.TrimSpace(s) == "" {
			return domain.QueryRecord{}, schemaViolation(fieldPath, "cannot be empty")
		}
		fields[name] = s
	}

	due, err := checkDueDate(path+".due_date", obj["due_date"])
	if err != nil {
		return domain.QueryRecord{}, err
	}

	return domain.QueryRecord{
		ID:          fields["id"],
		Title:       fields["title"],
		Description: fields["description"],
		Status:      fields["status"],
		DueDate:     due,
	}, nil
}

// checkDueDate accepts an absent or null value, the none marker, an empty
// string, or a valid YYYY-MM-DD date. Unset forms are normalized to nil.
func checkDueDate(path string, v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, schemaViolation(path, fmt.Sprintf("must be a string or null, got %s", jsonType(v)))
	}
	if s == "" || strings.EqualFold(s, NoneMarker) {
		return nil, nil
	}
	if !domain.IsValidDate(s) {
		return nil, schemaViolation(path, fmt.Sprintf("must be YYYY-MM-DD or %s, got %q", NoneMarker, s))
	}
	return &s, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
