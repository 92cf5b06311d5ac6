package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/healthtracker/internal/models"
)

// CreateBasicMeasurement persists a body profile snapshot.
func (s *SQLiteStore) CreateBasicMeasurement(ctx context.Context, m *models.BasicMeasurement) error {
	id, err := s.insert(ctx, "basic data",
		`INSERT INTO basic_data (user_id, date, age, gender, weight, height)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Date, m.Age, string(m.Gender), m.Weight, m.Height,
	)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// CreateHealthMeasurement persists a vital signs entry.
func (s *SQLiteStore) CreateHealthMeasurement(ctx context.Context, m *models.HealthMeasurement) error {
	id, err := s.insert(ctx, "health data",
		`INSERT INTO health_data (user_id, date, pulse, blood_pressure, duration_sleep)
		 VALUES (?, ?, ?, ?, ?)`,
		m.UserID, m.Date, m.Pulse, m.BloodPressure.String(), m.DurationSleep,
	)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// CreateActivityMeasurement persists an activity entry.
func (s *SQLiteStore) CreateActivityMeasurement(ctx context.Context, m *models.ActivityMeasurement) error {
	id, err := s.insert(ctx, "activity data",
		`INSERT INTO activity_data (user_id, date, activity_type, duration, water_intake)
		 VALUES (?, ?, ?, ?, ?)`,
		m.UserID, m.Date, m.ActivityType, m.Duration, m.WaterIntake,
	)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// ListBasicMeasurements retrieves a user's body profiles, most recent first.
func (s *SQLiteStore) ListBasicMeasurements(ctx context.Context, userID int64, limit int) ([]*models.BasicMeasurement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, age, gender, weight, height
		 FROM basic_data WHERE user_id = ?
		 ORDER BY date DESC, id DESC LIMIT ?`,
		userID, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list basic data: %w", err)
	}
	defer rows.Close()

	var out []*models.BasicMeasurement
	for rows.Next() {
		m := &models.BasicMeasurement{}
		var gender string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Age, &gender, &m.Weight, &m.Height); err != nil {
			return nil, fmt.Errorf("failed to scan basic data: %w", err)
		}
		m.Gender = models.Gender(gender)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate basic data: %w", err)
	}

	return out, nil
}

// ListHealthMeasurements retrieves a user's vital signs, most recent first.
func (s *SQLiteStore) ListHealthMeasurements(ctx context.Context, userID int64, limit int) ([]*models.HealthMeasurement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, pulse, blood_pressure, duration_sleep
		 FROM health_data WHERE user_id = ?
		 ORDER BY date DESC, id DESC LIMIT ?`,
		userID, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list health data: %w", err)
	}
	defer rows.Close()

	var out []*models.HealthMeasurement
	for rows.Next() {
		m := &models.HealthMeasurement{}
		var bp string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Pulse, &bp, &m.DurationSleep); err != nil {
			return nil, fmt.Errorf("failed to scan health data: %w", err)
		}
		if m.BloodPressure, err = models.ParseBloodPressure(bp); err != nil {
			return nil, fmt.Errorf("health data %d: %w", m.ID, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health data: %w", err)
	}

	return out, nil
}

// ListActivityMeasurements retrieves a user's activity entries, most recent first.
func (s *SQLiteStore) ListActivityMeasurements(ctx context.Context, userID int64, limit int) ([]*models.ActivityMeasurement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, activity_type, duration, water_intake
		 FROM activity_data WHERE user_id = ?
		 ORDER BY date DESC, id DESC LIMIT ?`,
		userID, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity data: %w", err)
	}
	defer rows.Close()

	var out []*models.ActivityMeasurement
	for rows.Next() {
		m := &models.ActivityMeasurement{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.ActivityType, &m.Duration, &m.WaterIntake); err != nil {
			return nil, fmt.Errorf("failed to scan activity data: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity data: %w", err)
	}

	return out, nil
}
