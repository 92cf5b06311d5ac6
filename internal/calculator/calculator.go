// Package calculator derives health metrics (BMI, body fat, calorie need)
// from submitted form fields. Every calculator is a pure function: no storage,
// no clock, no shared state.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/healthtracker/internal/models"
)

var (
	// ErrInvalidInput is wrapped by every validation failure.
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownCalculator = errors.New("unknown calculator")
)

// Calculator maps submitted form fields to one derived metric.
type Calculator interface {
	// Type is the identifier persisted with every result.
	Type() models.CalculatorType

	// Fields lists the form fields Calculate reads, in display order.
	Fields() []string

	// Calculate returns the metric rounded to two decimals, or an error
	// wrapping ErrInvalidInput when a field is missing, non-numeric or out of range.
	Calculate(fields map[string]string) (float64, error)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
