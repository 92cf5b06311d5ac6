package models

// CalculatorType identifies one of the health metric calculators.
type CalculatorType string

const (
	CalculatorBMI      CalculatorType = "bmi"
	CalculatorBodyFat  CalculatorType = "body_fat"
	CalculatorCalories CalculatorType = "calories"
)

// AllCalculatorTypes lists every calculator in display order.
var AllCalculatorTypes = []CalculatorType{
	CalculatorBMI,
	CalculatorBodyFat,
	CalculatorCalories,
}

// Label returns a human readable name for the calculator.
func (t CalculatorType) Label() string {
	switch t {
	case CalculatorBMI:
		return "Body Mass Index"
	case CalculatorBodyFat:
		return "Body Fat %"
	case CalculatorCalories:
		return "Daily Calorie Need"
	default:
		return string(t)
	}
}

// IsValidCalculatorType checks if a string names a known calculator.
func IsValidCalculatorType(s string) bool {
	for _, t := range AllCalculatorTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// CalculatorResult is one computed metric, kept as an append-only audit trail.
type CalculatorResult struct {
	ID             int64
	UserID         int64
	CalculatorType CalculatorType
	Result         float64

	// CreatedAt is the Unix timestamp when the result was computed.
	CreatedAt int64
}
