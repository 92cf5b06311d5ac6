package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and form format of measurement dates.
const DateLayout = "2006-01-02"

var ErrInvalidBloodPressure = errors.New("blood pressure must look like 120/80")

// Gender is the biological sex used by the body-fat and calorie formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male" or "female" in any letter case.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	default:
		return "", false
	}
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// Today returns the current local date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// BasicMeasurement is a dated snapshot of a user's body profile.
// A user may hold many of these; the most recent one is their current profile.
type BasicMeasurement struct {
	ID     int64
	UserID int64
	Date   string
	Age    int
	Gender Gender

	// Weight in kilograms.
	Weight float64

	// Height in centimetres.
	Height float64
}

// HealthMeasurement records vital signs for one day.
type HealthMeasurement struct {
	ID     int64
	UserID int64
	Date   string

	// Pulse in beats per minute.
	Pulse int

	BloodPressure BloodPressure

	// DurationSleep in hours.
	DurationSleep float64
}

// ActivityMeasurement records one activity session and the day's water intake.
type ActivityMeasurement struct {
	ID           int64
	UserID       int64
	Date         string
	ActivityType string

	// Duration in minutes.
	Duration int

	// WaterIntake in litres.
	WaterIntake float64
}

// BloodPressure is a systolic/diastolic pair in mmHg.
type BloodPressure struct {
	Systolic  int
	Diastolic int
}

// ParseBloodPressure parses the "systolic/diastolic" form, e.g. "120/80".
func ParseBloodPressure(s string) (BloodPressure, error) {
	sys, dia, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return BloodPressure{}, ErrInvalidBloodPressure
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(sys))
	if err != nil {
		return BloodPressure{}, ErrInvalidBloodPressure
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(dia))
	if err != nil {
		return BloodPressure{}, ErrInvalidBloodPressure
	}
	bp := BloodPressure{Systolic: systolic, Diastolic: diastolic}
	if !bp.Valid() {
		return BloodPressure{}, ErrInvalidBloodPressure
	}
	return bp, nil
}

// Valid reports whether both readings are physiologically plausible
// and systolic exceeds diastolic.
func (bp BloodPressure) Valid() bool {
	return bp.Diastolic > 0 && bp.Systolic < 400 && bp.Systolic > bp.Diastolic
}

func (bp BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", bp.Systolic, bp.Diastolic)
}
