package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/mmynk/healthtracker/internal/models"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError describes one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError lists every rejected field of a submission.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the error for field, or "" if the field was accepted.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// formValidator reads typed values out of a form, collecting every problem
// instead of stopping at the first.
type formValidator struct {
	fields map[string]string
	errs   error
}

func newFormValidator(fields map[string]string) *formValidator {
	return &formValidator{fields: fields}
}

func (v *formValidator) fail(field, msg string) {
	v.errs = multierr.Append(v.errs, &FieldError{Field: field, Message: msg})
}

func (v *formValidator) raw(field string) string {
	return strings.TrimSpace(v.fields[field])
}

func (v *formValidator) required(field string) (string, bool) {
	s := v.raw(field)
	if s == "" {
		v.fail(field, "is required")
		return "", false
	}
	return s, true
}

// date accepts an empty value as fallback (today).
func (v *formValidator) date(field, fallback string) string {
	s := v.raw(field)
	if s == "" {
		return fallback
	}
	d, err := models.ParseDate(s)
	if err != nil {
		v.fail(field, "must be a date in YYYY-MM-DD format")
		return ""
	}
	return d
}

func (v *formValidator) intInRange(field string, lo, hi int) int {
	s, ok := v.required(field)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.fail(field, "must be a whole number")
		return 0
	}
	if n < lo || n > hi {
		v.fail(field, "must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi))
		return 0
	}
	return n
}

// float checks lo < x <= hi, or lo <= x <= hi when inclusive is set.
func (v *formValidator) float(field string, lo, hi float64, inclusive bool) float64 {
	s, ok := v.required(field)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.fail(field, "must be a number")
		return 0
	}
	switch {
	case inclusive && f < lo:
		v.fail(field, "must not be negative")
		return 0
	case !inclusive && f <= lo:
		v.fail(field, "must be greater than zero")
		return 0
	case f > hi:
		v.fail(field, "must be at most "+strconv.FormatFloat(hi, 'f', -1, 64))
		return 0
	}
	return f
}

func (v *formValidator) gender(field string) models.Gender {
	s, ok := v.required(field)
	if !ok {
		return ""
	}
	g, ok := models.ParseGender(s)
	if !ok {
		v.fail(field, "must be male or female")
	}
	return g
}

func (v *formValidator) bloodPressure(field string) models.BloodPressure {
	s, ok := v.required(field)
	if !ok {
		return models.BloodPressure{}
	}
	bp, err := models.ParseBloodPressure(s)
	if err != nil {
		v.fail(field, "must look like 120/80")
	}
	return bp
}

func (v *formValidator) err() error {
	if v.errs == nil {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range multierr.Errors(v.errs) {
		var fe *FieldError
		if errors.As(e, &fe) {
			ve.Fields = append(ve.Fields, fe)
		}
	}
	return ve
}
