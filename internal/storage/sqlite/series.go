package sqlite

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/healthtracker/internal/storage"
)

// seriesQuery builds the query for s. Table and column come from the static
// series table, never from request input.
func seriesQuery(s storage.Series) string {
	def := s.Def()
	return fmt.Sprintf(
		`SELECT date, %s FROM %s WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?`,
		def.Column, def.Table,
	)
}

// Series retrieves chart points for one metric, oldest first.
func (s *SQLiteStore) Series(ctx context.Context, userID int64, series storage.Series, limit int) ([]storage.Point, error) {
	if !series.Valid() {
		return nil, fmt.Errorf("unknown series %d", int(series))
	}

	rows, err := s.db.QueryContext(ctx, seriesQuery(series), userID, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s series: %w", series, err)
	}
	defer rows.Close()

	var points []storage.Point
	for rows.Next() {
		var p storage.Point
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan %s point: %w", series, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s series: %w", series, err)
	}

	// Queried newest first so LIMIT keeps the most recent points.
	slices.Reverse(points)
	return points, nil
}
