package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/healthtracker/internal/models"
)

func lookup(fields map[string]string, name string) (string, error) {
	raw, ok := fields[name]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return "", invalid(name, "is required")
	}
	return raw, nil
}

func positiveFloat(fields map[string]string, name string) (float64, error) {
	raw, err := lookup(fields, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(name, "must be a number")
	}
	if v <= 0 {
		return 0, invalid(name, "must be greater than zero")
	}
	return v, nil
}

func positiveInt(fields map[string]string, name string) (int, error) {
	raw, err := lookup(fields, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(name, "must be a whole number")
	}
	if v <= 0 {
		return 0, invalid(name, "must be greater than zero")
	}
	return v, nil
}

func floatInRange(fields map[string]string, name string, lo, hi float64) (float64, error) {
	raw, err := lookup(fields, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(name, "must be a number")
	}
	if v < lo || v > hi {
		return 0, invalid(name, "must be between "+
			strconv.FormatFloat(lo, 'f', -1, 64)+" and "+strconv.FormatFloat(hi, 'f', -1, 64))
	}
	return v, nil
}

func gender(fields map[string]string) (models.Gender, error) {
	raw, err := lookup(fields, "gender")
	if err != nil {
		return "", err
	}
	g, ok := models.ParseGender(raw)
	if !ok {
		return "", invalid("gender", "must be male or female")
	}
	return g, nil
}
