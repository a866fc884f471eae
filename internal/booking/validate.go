package booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagHourTime = "hourtime"
	tagISODate  = "isodate"
)

var (
	hourTimeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):00$`)
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation(tagHourTime, matches(hourTimeRegex)); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tagHourTime, err))
	}

	if err := v.RegisterValidation(tagISODate, matches(isoDateRegex)); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tagISODate, err))
	}

	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Validate stops at the first broken rule: required fields in declaration
// order, then hour format, then date format, then start before end.
// Start and end are compared zero-padded, so "9:00" precedes "10:00".
func Validate(c Candidate) error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return newValidationError(fieldErrs[0].Field(), ErrMissingField)
		}

		return fmt.Errorf("validate candidate: %w", err)
	}

	times := []struct {
		field string
		value string
	}{
		{field: "startTime", value: c.StartTime},
		{field: "endTime", value: c.EndTime},
	}

	for _, t := range times {
		if err := validate.Var(t.value, tagHourTime); err != nil {
			return newValidationError(t.field, ErrInvalidTimeFormat)
		}
	}

	if err := validate.Var(c.Date, tagISODate); err != nil {
		return newValidationError("date", ErrInvalidDateFormat)
	}

	if padHour(c.StartTime) >= padHour(c.EndTime) {
		return newValidationError("endTime", ErrInvalidTimeRange)
	}

	return nil
}

// Normalize zero-pads single digit hours so that "9:00" sorts before "10:00".
// It expects a candidate that already passed Validate.
func Normalize(c Candidate) Candidate {
	c.StartTime = padHour(c.StartTime)
	c.EndTime = padHour(c.EndTime)

	return c
}

func padHour(t string) string {
	if len(t) == len("9:00") {
		return "0" + t
	}

	return t
}
