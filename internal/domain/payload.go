package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const invalidStatusMessage = "Invalid status. Must be pending, in-progress, or completed"

// requiredFields lists the creation fields that must be present, in the order
// they are reported.
var requiredFields = []string{"title", "description", "status"}

// taskPayload is the shape a creation payload must have once every field is
// known to be text.
type taskPayload struct {
	Title       string `json:"title"       validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Status      string `json:"status"      validate:"oneof=pending in-progress completed"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseNewTask turns a decoded JSON object into TaskInput. Rules are checked
// in order: missing fields, non-text fields, status, due date. The first
// broken rule is returned as a *ValidationError.
func ParseNewTask(payload map[string]any) (TaskInput, error) {
	if payload == nil {
		return TaskInput{}, NewValidationError(KindMissingField, "",
			"Missing required fields: title, description, status")
	}

	for _, field := range requiredFields {
		if v, ok := payload[field]; !ok || v == nil {
			return TaskInput{}, NewValidationError(KindMissingField, field,
				"Missing required fields: title, description, status")
		}
	}

	var p taskPayload
	var ok bool
	if p.Title, ok = payload["title"].(string); !ok {
		return TaskInput{}, NewValidationError(KindWrongType, "title", "Invalid field types")
	}
	if p.Description, ok = payload["description"].(string); !ok {
		return TaskInput{}, NewValidationError(KindWrongType, "description", "Invalid field types")
	}
	if p.Status, ok = payload["status"].(string); !ok {
		return TaskInput{}, NewValidationError(KindWrongType, "status", "Invalid field types")
	}

	switch due := payload["due_date"].(type) {
	case nil:
	case string:
		p.DueDate = due
	default:
		return TaskInput{}, NewValidationError(KindInvalidDate, "due_date",
			"Invalid due_date format. Use YYYY-MM-DD")
	}

	if err := validate.Struct(p); err != nil {
		return TaskInput{}, translateValidationError(err)
	}

	in := TaskInput{
		Title:       p.Title,
		Description: p.Description,
		Status:      Status(p.Status),
	}
	if p.DueDate != "" {
		due, err := ParseDate(p.DueDate)
		if err != nil {
			return TaskInput{}, NewValidationError(KindInvalidDate, "due_date",
				"Invalid due_date format. Use YYYY-MM-DD")
		}
		in.DueDate = &due
	}
	return in, nil
}

// translateValidationError maps the first validator failure onto a
// ValidationError kind.
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewValidationError(KindWrongType, "", err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return NewValidationError(KindMissingField, fe.Field(), fe.Field()+" cannot be blank")
	case "oneof":
		return NewValidationError(KindInvalidStatus, fe.Field(), invalidStatusMessage)
	case "datetime":
		return NewValidationError(KindInvalidDate, fe.Field(), "Invalid due_date format. Use YYYY-MM-DD")
	default:
		return NewValidationError(KindWrongType, fe.Field(), "Invalid field types")
	}
}
