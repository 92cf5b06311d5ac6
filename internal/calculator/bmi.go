package calculator

import "github.com/mmynk/healthtracker/internal/models"

// BMI computes Body Mass Index from weight (kg) and height (cm).
type BMI struct{}

var _ Calculator = BMI{}

func (BMI) Type() models.CalculatorType { return models.CalculatorBMI }

func (BMI) Fields() []string { return []string{"weight", "height"} }

func (BMI) Calculate(fields map[string]string) (float64, error) {
	weight, err := positiveFloat(fields, "weight")
	if err != nil {
		return 0, err
	}
	height, err := positiveFloat(fields, "height")
	if err != nil {
		return 0, err
	}
	return CalculateBMI(weight, height), nil
}

// CalculateBMI returns weight / (height in metres)^2, rounded to two decimals.
// Callers must pass positive values.
func CalculateBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return round2(weightKg / (m * m))
}
