package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/healthtracker/internal/models"
)

// CreateCalculatorResult appends a computed metric to the audit trail.
func (s *SQLiteStore) CreateCalculatorResult(ctx context.Context, r *models.CalculatorResult) error {
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}

	id, err := s.insert(ctx, "calculator result",
		`INSERT INTO calculator_results (user_id, calculator_type, result, created_at)
		 VALUES (?, ?, ?, ?)`,
		r.UserID, string(r.CalculatorType), r.Result, r.CreatedAt,
	)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// ListCalculatorResults retrieves a user's computed metrics, most recent first.
func (s *SQLiteStore) ListCalculatorResults(ctx context.Context, userID int64, limit int) ([]*models.CalculatorResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, calculator_type, result, created_at
		 FROM calculator_results WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculator results: %w", err)
	}
	defer rows.Close()

	var results []*models.CalculatorResult
	for rows.Next() {
		r := &models.CalculatorResult{}
		var calcType string
		if err := rows.Scan(&r.ID, &r.UserID, &calcType, &r.Result, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculator result: %w", err)
		}
		r.CalculatorType = models.CalculatorType(calcType)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculator results: %w", err)
	}

	return results, nil
}
