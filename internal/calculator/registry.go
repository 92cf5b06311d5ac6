package calculator

import (
	"fmt"

	"github.com/mmynk/healthtracker/internal/models"
)

// Registry dispatches a calculator type to its implementation.
type Registry struct {
	calculators map[models.CalculatorType]Calculator
	order       []models.CalculatorType
}

// NewRegistry builds a registry from the given calculators. A later
// calculator with the same type replaces an earlier one.
func NewRegistry(calculators ...Calculator) *Registry {
	r := &Registry{calculators: make(map[models.CalculatorType]Calculator, len(calculators))}
	for _, c := range calculators {
		if _, exists := r.calculators[c.Type()]; !exists {
			r.order = append(r.order, c.Type())
		}
		r.calculators[c.Type()] = c
	}
	return r
}

// Default returns a registry with BMI, body fat and calorie calculators.
func Default() *Registry {
	return NewRegistry(BMI{}, BodyFat{}, Calories{})
}

// Get looks up the calculator for t.
func (r *Registry) Get(t models.CalculatorType) (Calculator, bool) {
	c, ok := r.calculators[t]
	return c, ok
}

// Types returns the registered calculator types in registration order.
func (r *Registry) Types() []models.CalculatorType {
	out := make([]models.CalculatorType, len(r.order))
	copy(out, r.order)
	return out
}

// Calculate runs the calculator registered for t.
func (r *Registry) Calculate(t models.CalculatorType, fields map[string]string) (float64, error) {
	c, ok := r.calculators[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCalculator, t)
	}
	return c.Calculate(fields)
}
