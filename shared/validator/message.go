package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// templates are keyed by validation tag. {field} is the json name, {param} the tag argument.
var templates = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"url":      "{field} must be a valid URL",
	"uuid":     "{field} must be a valid UUID",

	"gte": atLeast,
	"min": atLeast,
	"lte": atMost,
	"max": atMost,

	"isodate":     "{field} must be a date formatted as YYYY-MM-DD",
	"notpastdate": "{field} must be a YYYY-MM-DD date that is not in the past",
	"timeslot":    "{field} must be a time formatted as HH:MM",
}

const (
	atLeast = "{field} must be greater than or equal to {param}"
	atMost  = "{field} must be less than or equal to {param}"
)

// message renders the first field error that has a template.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrs {
		tmpl, ok := templates[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
	}

	return fieldErrs.Error()
}
