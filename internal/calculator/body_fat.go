package calculator

import (
	"math"

	"github.com/mmynk/healthtracker/internal/models"
)

// BodyFat estimates body fat percentage from chest, abdomen and thigh
// measurements plus age and gender.
type BodyFat struct{}

var _ Calculator = BodyFat{}

func (BodyFat) Type() models.CalculatorType { return models.CalculatorBodyFat }

func (BodyFat) Fields() []string {
	return []string{"gender", "age", "chest", "abdomen", "thigh"}
}

func (BodyFat) Calculate(fields map[string]string) (float64, error) {
	g, err := gender(fields)
	if err != nil {
		return 0, err
	}
	age, err := positiveInt(fields, "age")
	if err != nil {
		return 0, err
	}
	chest, err := positiveFloat(fields, "chest")
	if err != nil {
		return 0, err
	}
	abdomen, err := positiveFloat(fields, "abdomen")
	if err != nil {
		return 0, err
	}
	thigh, err := positiveFloat(fields, "thigh")
	if err != nil {
		return 0, err
	}
	return CalculateBodyFat(g, age, chest, abdomen, thigh), nil
}

// CalculateBodyFat applies the three-site formula
//
//	1.097 - 0.00046971*s + 0.00000056*s^2 - 0.00012828*age - (5.4 if female)
//
// where s is the sum of the three measurements. The result is rounded to two
// decimals and never negative.
func CalculateBodyFat(g models.Gender, age int, chest, abdomen, thigh float64) float64 {
	s := chest + abdomen + thigh
	v := 1.097 - 0.00046971*s + 0.00000056*s*s - 0.00012828*float64(age)
	if g == models.GenderFemale {
		v -= 5.4
	}
	return math.Max(0, round2(v))
}
