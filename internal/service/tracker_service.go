package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/healthtracker/internal/calculator"
	"github.com/mmynk/healthtracker/internal/metrics"
	"github.com/mmynk/healthtracker/internal/models"
	"github.com/mmynk/healthtracker/internal/storage"
)

// Measurement kinds, used as form types and metric labels.
const (
	KindBasic    = "basic_data"
	KindHealth   = "health_data"
	KindActivity = "activity_data"
)

const (
	dashboardHistory = 5
	dashboardResults = 10
)

// TrackerService validates and records measurements and runs calculators on
// behalf of one authenticated user per call.
type TrackerService struct {
	store       storage.MeasurementStore
	calculators *calculator.Registry
	metrics     *metrics.Manager
	logger      *slog.Logger
	today       func() string
}

// NewTrackerService creates a TrackerService with the given storage backend
// and calculator registry.
func NewTrackerService(store storage.MeasurementStore, calculators *calculator.Registry, m *metrics.Manager, logger *slog.Logger) *TrackerService {
	return &TrackerService{
		store:       store,
		calculators: calculators,
		metrics:     m,
		logger:      logger,
		today:       models.Today,
	}
}

// Calculators exposes the registry, e.g. for rendering calculator forms.
func (s *TrackerService) Calculators() *calculator.Registry {
	return s.calculators
}

// SaveBasicData validates and stores a body profile snapshot.
func (s *TrackerService) SaveBasicData(ctx context.Context, userID int64, fields map[string]string) (*models.BasicMeasurement, error) {
	v := newFormValidator(fields)
	m := &models.BasicMeasurement{
		UserID: userID,
		Date:   v.date("date", s.today()),
		Age:    v.intInRange("age", 1, 150),
		Gender: v.gender("gender"),
		Weight: v.float("weight", 0, 700, false),
		Height: v.float("height", 0, 300, false),
	}
	if err := v.err(); err != nil {
		s.record(KindBasic, metrics.OutcomeInvalid)
		return nil, err
	}

	if err := s.store.CreateBasicMeasurement(ctx, m); err != nil {
		s.record(KindBasic, metrics.OutcomeError)
		return nil, fmt.Errorf("save basic data: %w", err)
	}

	s.record(KindBasic, metrics.OutcomeOK)
	s.logger.Info("Basic data saved", "user_id", userID, "id", m.ID, "date", m.Date)
	return m, nil
}

// SaveHealthData validates and stores vital signs.
func (s *TrackerService) SaveHealthData(ctx context.Context, userID int64, fields map[string]string) (*models.HealthMeasurement, error) {
	v := newFormValidator(fields)
	m := &models.HealthMeasurement{
		UserID:        userID,
		Date:          v.date("date", s.today()),
		Pulse:         v.intInRange("pulse", 1, 300),
		BloodPressure: v.bloodPressure("blood_pressure"),
		DurationSleep: v.float("duration_sleep", 0, 24, false),
	}
	if err := v.err(); err != nil {
		s.record(KindHealth, metrics.OutcomeInvalid)
		return nil, err
	}

	if err := s.store.CreateHealthMeasurement(ctx, m); err != nil {
		s.record(KindHealth, metrics.OutcomeError)
		return nil, fmt.Errorf("save health data: %w", err)
	}

	s.record(KindHealth, metrics.OutcomeOK)
	s.logger.Info("Health data saved", "user_id", userID, "id", m.ID, "date", m.Date)
	return m, nil
}

// SaveActivityData validates and stores an activity entry.
func (s *TrackerService) SaveActivityData(ctx context.Context, userID int64, fields map[string]string) (*models.ActivityMeasurement, error) {
	v := newFormValidator(fields)
	m := &models.ActivityMeasurement{
		UserID:      userID,
		Date:        v.date("date", s.today()),
		Duration:    v.intInRange("duration", 1, 24*60),
		WaterIntake: v.float("water_intake", 0, 20, true),
	}
	m.ActivityType, _ = v.required("activity_type")
	if err := v.err(); err != nil {
		s.record(KindActivity, metrics.OutcomeInvalid)
		return nil, err
	}

	if err := s.store.CreateActivityMeasurement(ctx, m); err != nil {
		s.record(KindActivity, metrics.OutcomeError)
		return nil, fmt.Errorf("save activity data: %w", err)
	}

	s.record(KindActivity, metrics.OutcomeOK)
	s.logger.Info("Activity data saved", "user_id", userID, "id", m.ID, "date", m.Date)
	return m, nil
}

// Calculate runs the named calculator and appends the result to the user's
// audit trail. Input problems wrap calculator.ErrInvalidInput or
// calculator.ErrUnknownCalculator; nothing is stored in that case.
func (s *TrackerService) Calculate(ctx context.Context, userID int64, calcType models.CalculatorType, fields map[string]string) (*models.CalculatorResult, error) {
	value, err := s.calculators.Calculate(calcType, fields)
	if err != nil {
		s.metrics.CounterCalculations.WithLabelValues(string(calcType), metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	result := &models.CalculatorResult{
		UserID:         userID,
		CalculatorType: calcType,
		Result:         value,
	}
	if err := s.store.CreateCalculatorResult(ctx, result); err != nil {
		s.metrics.CounterCalculations.WithLabelValues(string(calcType), metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("save %s result: %w", calcType, err)
	}

	s.metrics.CounterCalculations.WithLabelValues(string(calcType), metrics.OutcomeOK).Inc()
	s.logger.Info("Calculator result saved", "user_id", userID, "calculator", calcType, "result", value)
	return result, nil
}

// Dashboard is everything the home page shows about a user.
type Dashboard struct {
	// Profile is the most recent basic data, or nil if none was submitted.
	Profile *models.BasicMeasurement

	// BMI is derived from Profile; zero when Profile is nil.
	BMI float64

	Health   []*models.HealthMeasurement
	Activity []*models.ActivityMeasurement
	Results  []*models.CalculatorResult
}

// Dashboard loads the user's latest measurements and calculator results.
func (s *TrackerService) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	profiles, err := s.store.ListBasicMeasurements(ctx, userID, 1)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	d := &Dashboard{}
	if len(profiles) > 0 {
		d.Profile = profiles[0]
		d.BMI = calculator.CalculateBMI(d.Profile.Weight, d.Profile.Height)
	}

	if d.Health, err = s.store.ListHealthMeasurements(ctx, userID, dashboardHistory); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	if d.Activity, err = s.store.ListActivityMeasurements(ctx, userID, dashboardHistory); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	if d.Results, err = s.store.ListCalculatorResults(ctx, userID, dashboardResults); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	return d, nil
}

// Series returns chart points for one metric, oldest first.
func (s *TrackerService) Series(ctx context.Context, userID int64, series storage.Series, limit int) ([]storage.Point, error) {
	points, err := s.store.Series(ctx, userID, series, limit)
	if err != nil {
		return nil, fmt.Errorf("load %s series: %w", series, err)
	}
	return points, nil
}

// IsUserError reports whether err is the user's fault and should be shown
// inline rather than as a generic failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, calculator.ErrInvalidInput) ||
		errors.Is(err, calculator.ErrUnknownCalculator)
}

func (s *TrackerService) record(kind, outcome string) {
	s.metrics.CounterMeasurements.WithLabelValues(kind, outcome).Inc()
}
