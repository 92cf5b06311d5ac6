package web

import (
	"html/template"
	"strconv"

	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/service"
)

// Sections of the home page, selected with ?section=.
const (
	sectionWelcome    = "welcome"
	sectionBasic      = "basic"
	sectionHealth     = "health"
	sectionActivity   = "activity"
	sectionCalculator = "calculator"
	sectionCharts     = "charts"
)

var sections = []string{
	sectionWelcome,
	sectionBasic,
	sectionHealth,
	sectionActivity,
	sectionCalculator,
	sectionCharts,
}

// formCalculator is the form_type of calculator submissions.
const formCalculator = "calculator"

// formSections maps a submitted form_type to the panel that shows it.
var formSections = map[string]string{
	service.KindBasic:    sectionBasic,
	service.KindHealth:   sectionHealth,
	service.KindActivity: sectionActivity,
	formCalculator:       sectionCalculator,
}

func parseSection(s string) string {
	for _, known := range sections {
		if s == known {
			return known
		}
	}
	return sectionWelcome
}

type chartView struct {
	Label   string
	DataURI template.URL

	// Missing is set when there are too few points to draw.
	Missing bool
}

type calculatorView struct {
	Type   models.CalculatorType
	Label  string
	Fields []string
}

type homeView struct {
	Username string
	Section  string
	Sections []string
	Saved    bool

	Dashboard   *service.Dashboard
	Charts      []chartView
	Calculators []calculatorView

	// Form echoes the rejected submission back into its inputs.
	FormType string
	Form     map[string]string

	Invalid *service.ValidationError
	Error   string

	Calculator models.CalculatorType
	Result     *models.CalculatorResult
}

// FieldError returns the inline error for a field of the submitted form.
func (v *homeView) FieldError(formType, field string) string {
	if v.Invalid == nil || v.FormType != formType {
		return ""
	}
	return v.Invalid.Message(field)
}

// Value returns the echoed input of a field of the submitted form.
func (v *homeView) Value(formType, field string) string {
	if v.FormType != formType {
		return ""
	}
	return v.Form[field]
}

var templateFuncs = template.FuncMap{
	"num": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"fixed2": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 2, 64)
	},
	"label": func(t models.CalculatorType) string {
		return t.Label()
	},
	"fieldLabel": fieldLabel,
}

var fieldLabels = map[string]string{
	"weight":         "Weight (kg)",
	"height":         "Height (cm)",
	"age":            "Age",
	"gender":         "Gender",
	"activity_level": "Activity level (1.0 to 2.5)",
	"chest":          "Chest skinfold (mm)",
	"abdomen":        "Abdomen skinfold (mm)",
	"thigh":          "Thigh skinfold (mm)",
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
