package calculator

import "github.com/mmynk/healthtracker/internal/models"

const (
	MinActivityLevel = 1.0
	MaxActivityLevel = 2.5
)

// Calories estimates daily calorie need: Harris-Benedict BMR scaled by an
// activity multiplier.
type Calories struct{}

var _ Calculator = Calories{}

func (Calories) Type() models.CalculatorType { return models.CalculatorCalories }

func (Calories) Fields() []string {
	return []string{"gender", "weight", "height", "age", "activity_level"}
}

func (Calories) Calculate(fields map[string]string) (float64, error) {
	g, err := gender(fields)
	if err != nil {
		return 0, err
	}
	weight, err := positiveFloat(fields, "weight")
	if err != nil {
		return 0, err
	}
	height, err := positiveFloat(fields, "height")
	if err != nil {
		return 0, err
	}
	age, err := positiveFloat(fields, "age")
	if err != nil {
		return 0, err
	}
	activity, err := floatInRange(fields, "activity_level", MinActivityLevel, MaxActivityLevel)
	if err != nil {
		return 0, err
	}
	return CalculateCalories(g, weight, height, age, activity), nil
}

// BMR returns the Harris-Benedict basal metabolic rate in kcal/day.
// Age may be fractional.
func BMR(g models.Gender, weightKg, heightCm, age float64) float64 {
	if g == models.GenderFemale {
		return 447.6 + 9.2*weightKg + 3.1*heightCm - 4.3*age
	}
	return 88.36 + 13.4*weightKg + 4.8*heightCm - 5.7*age
}

// CalculateCalories returns BMR * activityLevel rounded to two decimals.
func CalculateCalories(g models.Gender, weightKg, heightCm, age, activityLevel float64) float64 {
	return round2(BMR(g, weightKg, heightCm, age) * activityLevel)
}
