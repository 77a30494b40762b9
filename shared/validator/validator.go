package validator

import (
	"encoding/json"
	"fmt"
	"heritage/shared/constant"
	"heritage/shared/failure"
	"heritage/shared/timezone"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerDateValidation accepts YYYY-MM-DD strings.
func registerDateValidation(field val.FieldLevel) bool {
	_, err := timezone.Parse(constant.DateKeyFormat, field.Field().String())

	return err == nil
}

// registerNotPastDateValidation accepts YYYY-MM-DD strings that are today or later in the app time zone.
func registerNotPastDateValidation(field val.FieldLevel) bool {
	return !timezone.IsPastDate(field.Field().String())
}

func registerTimeSlotValidation(field val.FieldLevel) bool {
	_, err := timezone.Parse(constant.SlotFormat, field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"isodate":     registerDateValidation,
		"notpastdate": registerNotPastDateValidation,
		"timeslot":    registerTimeSlotValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
