package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyMeansNoMatch(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "\n\t\n", "```json\n```"} {
		result, err := Validate(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, 0, result.Len())
		assert.NotNil(t, result.Tasks)
	}
}

func TestValidate_EmptyTaskList(t *testing.T) {
	t.Parallel()

	result, err := Validate(`{"tasks":[]}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
}

func TestValidate_ValidRecords(t *testing.T) {
	t.Parallel()

	raw := `{
		"tasks": [
			{"id": "a1", "title": "Complete Report", "description": "Q3", "status": "in-progress", "due_date": "2025-07-25"},
			{"id": "b2", "title": "Fix Bug", "description": "Crash", "status": "pending", "due_date": "None"},
			{"id": "c3", "title": "Update Docs", "description": "README", "status": "completed", "due_date": null},
			{"id": "d4", "title": "Team Meeting", "description": "Sync", "status": "completed"}
		],
		"explanation": "ignored"
	}`

	result, err := Validate(raw)
	require.NoError(t, err)
	require.Equal(t, 4, result.Len())

	first := result.Tasks[0]
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, "Complete Report", first.Title)
	assert.Equal(t, "Q3", first.Description)
	assert.Equal(t, "in-progress", first.Status)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2025-07-25", *first.DueDate)

	for _, rec := range result.Tasks[1:] {
		assert.Nil(t, rec.DueDate, "record %s should have no due date", rec.ID)
	}
	assert.Equal(t, []string{"a1", "b2", "c3", "d4"},
		[]string{result.Tasks[0].ID, result.Tasks[1].ID, result.Tasks[2].ID, result.Tasks[3].ID})
}

func TestValidate_StatusIsNotCheckedAgainstEnum(t *testing.T) {
	t.Parallel()

	result, err := Validate(`{"tasks":[{"id":"1","title":"t","description":"d","status":"Blocked"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Blocked", result.Tasks[0].Status)
}

func TestValidate_CodeFence(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"```json\n{\"tasks\":[{\"id\":\"1\",\"title\":\"t\",\"description\":\"d\",\"status\":\"pending\"}]}\n```",
		"```\n{\"tasks\":[{\"id\":\"1\",\"title\":\"t\",\"description\":\"d\",\"status\":\"pending\"}]}\n```",
		"```{\"tasks\":[{\"id\":\"1\",\"title\":\"t\",\"description\":\"d\",\"status\":\"pending\"}]}```",
	} {
		result, err := Validate(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, 1, result.Len())
	}
}

func TestValidate_ParseFailure(t *testing.T) {
	t.Parallel()

	tests := []string{
		"not structured data at all",
		`{"tasks": [}`,
		`{'tasks': []}`,
		`{"tasks": []} trailing`,
		`{"tasks": []}{"tasks": []}`,
		`__import__('os').system('rm -rf /')`,
		"```",
		"``````",
		"```json\n```",
		"```json\n   \n```",
		"{\"tasks\": [{\"id\": \"1\", \"title\": \"\xff\", \"description\": \"d\", \"status\": \"pending\"}]}",
	}

	for _, raw := range tests {
		_, err := Validate(raw)
		require.Error(t, err, "input %q", raw)

		var rerr *ResultError
		require.True(t, errors.As(err, &rerr), "input %q: expected *ResultError, got %T", raw, err)
		assert.Equal(t, KindParseFailure, rerr.Kind, "input %q", raw)
		assert.ErrorIs(t, err, ErrParseFailure)
		assert.ErrorIs(t, err, ErrInvalidResult)
	}
}

func TestValidate_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		path string
	}{
		{"missing title description status", `{"tasks":[{"id":"1"}]}`, "tasks[0].title"},
		{"top level list", `[{"id":"1"}]`, ""},
		{"top level string", `"tasks"`, ""},
		{"top level null", `null`, ""},
		{"no tasks key", `{"results":[]}`, "tasks"},
		{"tasks not a list", `{"tasks":{"id":"1"}}`, "tasks"},
		{"tasks null", `{"tasks":null}`, "tasks"},
		{"record not an object", `{"tasks":["1"]}`, "tasks[0]"},
		{"numeric id", `{"tasks":[{"id":1,"title":"t","description":"d","status":"pending"}]}`, "tasks[0].id"},
		{"null status", `{"tasks":[{"id":"1","title":"t","description":"d","status":null}]}`, "tasks[0].status"},
		{"empty description", `{"tasks":[{"id":"1","title":"t","description":" ","status":"pending"}]}`, "tasks[0].description"},
		{"bad due date", `{"tasks":[{"id":"1","title":"t","description":"d","status":"pending","due_date":"2025-02-30"}]}`, "tasks[0].due_date"},
		{"numeric due date", `{"tasks":[{"id":"1","title":"t","description":"d","status":"pending","due_date":20250725}]}`, "tasks[0].due_date"},
		{
			"second record broken",
			`{"tasks":[{"id":"1","title":"t","description":"d","status":"pending"},{"id":"2","title":"t","status":"pending"}]}`,
			"tasks[1].description",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := Validate(tc.raw)
			require.Error(t, err)
			assert.Nil(t, result.Tasks, "no partial results on failure")

			var rerr *ResultError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, KindSchemaViolation, rerr.Kind)
			assert.Equal(t, tc.path, rerr.Path)
			assert.ErrorIs(t, err, ErrSchemaViolation)
			assert.ErrorIs(t, err, ErrInvalidResult)
		})
	}
}

func TestResultErrorMessage(t *testing.T) {
	t.Parallel()

	err := schemaViolation("tasks[0].id", "is required")
	assert.Equal(t, "language model response does not match the result schema: tasks[0].id is required", err.Error())

	perr := parseFailure("invalid character 'o' in literal null")
	assert.Contains(t, perr.Error(), "not valid JSON")
}

func TestValidate_FenceAndEncodingDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		detail string
	}{
		{"```json\n```", "empty code block"},
		{"``````", "empty code block"},
		{"{\"tasks\": [\"\xff\"]}", "answer is not valid UTF-8"},
	}

	for _, tt := range tests {
		_, err := Validate(tt.raw)

		var rerr *ResultError
		require.True(t, errors.As(err, &rerr), "input %q", tt.raw)
		assert.Equal(t, KindParseFailure, rerr.Kind)
		assert.Equal(t, tt.detail, rerr.Detail)
	}
}
