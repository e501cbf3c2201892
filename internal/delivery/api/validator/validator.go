// Package validator adapts go-playground/validator to echo.
package validator

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator reporting field names by their json tag.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Validator{validate: validate}
}

// Changes is a partial update. Only fields present in Fields are checked, each against its rule in Rules;
// ruled fields must hold strings.
type Changes struct {
	Fields map[string]any
	Rules  map[string]string
}

// Validate checks struct tags, or the rules of a Changes value.
// Failures are returned as a 400 AppError listing the offending fields.
func (v *Validator) Validate(i any) error {
	if changes, ok := i.(Changes); ok {
		return v.validateChanges(changes)
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		problems = append(problems, describe(fieldErr.Field(), fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}

func (v *Validator) validateChanges(changes Changes) error {
	var problems []string
	rules := make(map[string]any, len(changes.Rules))
	for _, field := range slices.Sorted(maps.Keys(changes.Rules)) {
		value, present := changes.Fields[field]
		if !present {
			continue
		}
		// Size rules panic on bool values, so only strings and null reach the validator.
		if _, isText := value.(string); value != nil && !isText {
			problems = append(problems, field+" must be a string")

			continue
		}
		rules[field] = changes.Rules[field]
	}

	failed := v.validate.ValidateMap(changes.Fields, rules)
	for _, field := range slices.Sorted(maps.Keys(failed)) {
		var fieldErrs validator.ValidationErrors
		err, _ := failed[field].(error)
		if !errors.As(err, &fieldErrs) {
			return errors.Wrapf(err, "validate %s", field)
		}
		for _, fieldErr := range fieldErrs {
			problems = append(problems, describe(field, fieldErr))
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}

func describe(field string, fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "uuid":
		return field + " must be a UUID"
	case "max":
		return field + " must be at most " + fieldErr.Param() + " characters"
	default:
		return field + " failed " + fieldErr.Tag()
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}
