package sqlstore

import (
	"context"
	"fmt"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// All four reports count one angler's catches per group, ordered by count
// descending then label ascending.

var barometricLabel = fmt.Sprintf(`CASE
		WHEN c.barometric_pressure >= %.2f THEN '%s'
		WHEN c.barometric_pressure >= %.2f AND c.barometric_pressure <= %.2f THEN '%s'
		ELSE '%s'
	END`,
	domain.BarometricHighMin, domain.BarometricHigh,
	domain.BarometricMediumMin, domain.BarometricMediumMax, domain.BarometricMedium,
	domain.BarometricLow)

// SpeciesCounts groups catches by species name.
func (s *Store) SpeciesCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error) {
	return s.countBy(ctx, "species", `
		SELECT s.name AS label, COUNT(*) AS n
		FROM catches c JOIN species s ON s.id = c.species_id
		WHERE c.angler_id = ?
		GROUP BY s.name
		ORDER BY n DESC, label ASC`, anglerID)
}

// ConditionCounts groups catches by weather description.
func (s *Store) ConditionCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error) {
	return s.countBy(ctx, "weather", `
		SELECT c.weather AS label, COUNT(*) AS n
		FROM catches c
		WHERE c.angler_id = ?
		GROUP BY c.weather
		ORDER BY n DESC, label ASC`, anglerID)
}

// WindCounts groups catches by wind direction bucket.
func (s *Store) WindCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error) {
	return s.countBy(ctx, "wind", `
		SELECT c.wind_direction AS label, COUNT(*) AS n
		FROM catches c
		WHERE c.angler_id = ?
		GROUP BY c.wind_direction
		ORDER BY n DESC, label ASC`, anglerID)
}

// BarometricCounts groups catches into barometric pressure bands.
func (s *Store) BarometricCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error) {
	return s.countBy(ctx, "barometric", `
		SELECT `+barometricLabel+` AS label, COUNT(*) AS n
		FROM catches c
		WHERE c.angler_id = ?
		GROUP BY label
		ORDER BY n DESC, label ASC`, anglerID)
}

func (s *Store) countBy(ctx context.Context, report, query string, anglerID int64) ([]domain.CountRow, error) {
	rows, err := s.db.QueryContext(ctx, query, anglerID)
	if err != nil {
		return nil, fmt.Errorf("%s report: %w", report, err)
	}
	defer rows.Close()

	out := []domain.CountRow{}
	for rows.Next() {
		var r domain.CountRow
		if err := rows.Scan(&r.Label, &r.Count); err != nil {
			return nil, fmt.Errorf("scan %s report: %w", report, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
