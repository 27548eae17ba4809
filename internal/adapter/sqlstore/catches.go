package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const catchSelect = `
	SELECT c.id, c.species_id, s.name, c.angler_id, c.lake_id, l.name,
	       c.length, c.weight, c.catch_date, c.catch_time, c.catch_unix,
	       c.barometric_pressure, c.temperature, c.weather, c.wind_direction,
	       c.wind_speed, c.lure_id, c.image_url, c.is_master_angler, c.recorded_at
	FROM catches c
	JOIN species s ON s.id = c.species_id
	JOIN lakes l ON l.id = c.lake_id`

const catchOrder = ` ORDER BY c.catch_date DESC, c.catch_time DESC, c.id DESC`

func scanCatch(row scanner) (domain.Catch, error) {
	var (
		c        domain.Catch
		length   sql.NullFloat64
		weight   sql.NullFloat64
		lureID   sql.NullInt64
		wind     string
		recorded int64
	)
	err := row.Scan(&c.ID, &c.SpeciesID, &c.SpeciesName, &c.AnglerID, &c.LakeID, &c.LakeName,
		&length, &weight, &c.Date, &c.Time, &c.Timestamp,
		&c.Pressure, &c.Temperature, &c.Conditions, &wind,
		&c.WindSpeed, &lureID, &c.ImageURL, &c.MasterAngler, &recorded)
	if err != nil {
		return domain.Catch{}, err
	}
	if length.Valid {
		c.Length = &length.Float64
	}
	if weight.Valid {
		c.Weight = &weight.Float64
	}
	if lureID.Valid {
		c.LureID = &lureID.Int64
	}
	c.WindDirection = domain.WindBucket(wind)
	c.RecordedAt = time.Unix(recorded, 0).UTC()
	return c, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func (s *Store) queryCatches(ctx context.Context, query string, args ...any) ([]domain.Catch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}
	defer rows.Close()

	out := []domain.Catch{}
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catch: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertCatch persists an enriched catch and increments the angler's catch
// count in the same transaction.
func (s *Store) InsertCatch(ctx context.Context, c domain.Catch) (domain.Catch, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO catches (
				species_id, angler_id, lake_id, length, weight, catch_date, catch_time,
				catch_unix, barometric_pressure, temperature, weather, wind_direction,
				wind_speed, lure_id, image_url, is_master_angler, recorded_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.SpeciesID, c.AnglerID, c.LakeID, nullFloat(c.Length), nullFloat(c.Weight), c.Date, c.Time,
			c.Timestamp, c.Pressure, c.Temperature, c.Conditions, string(c.WindDirection),
			c.WindSpeed, nullInt(c.LureID), c.ImageURL, c.MasterAngler, c.RecordedAt.Unix())
		if err != nil {
			return translate(err, "insert catch")
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert catch: %w", err)
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE anglers SET catch_count = catch_count + 1 WHERE id = ?`, c.AnglerID)
		if err != nil {
			return translate(err, "increment catch count")
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: angler %d", domain.ErrNotFound, c.AnglerID)
		}
		return nil
	})
	if err != nil {
		return domain.Catch{}, err
	}
	return c, nil
}

// CatchByID loads one catch with species and lake names.
func (s *Store) CatchByID(ctx context.Context, id int64) (domain.Catch, error) {
	c, err := scanCatch(s.db.QueryRowContext(ctx, catchSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return domain.Catch{}, notFound(err, "catch", id)
	}
	return c, nil
}

// CatchesByAngler returns an angler's catches, newest first. limit <= 0
// returns all of them.
func (s *Store) CatchesByAngler(ctx context.Context, anglerID int64, limit int) ([]domain.Catch, error) {
	query := catchSelect + ` WHERE c.angler_id = ?` + catchOrder
	if limit > 0 {
		return s.queryCatches(ctx, query+` LIMIT ?`, anglerID, limit)
	}
	return s.queryCatches(ctx, query, anglerID)
}

// MasterAnglerCatches returns an angler's qualifying catches, newest first.
func (s *Store) MasterAnglerCatches(ctx context.Context, anglerID int64) ([]domain.Catch, error) {
	return s.queryCatches(ctx,
		catchSelect+` WHERE c.angler_id = ? AND c.is_master_angler = ?`+catchOrder, anglerID, true)
}

// UpdateCatch saves the editable fields of a catch.
func (s *Store) UpdateCatch(ctx context.Context, c domain.Catch) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE catches SET species_id = ?, lake_id = ?, length = ?, weight = ?, image_url = ?
		WHERE id = ?`,
		c.SpeciesID, c.LakeID, nullFloat(c.Length), nullFloat(c.Weight), c.ImageURL, c.ID)
	return translate(err, "update catch")
}

// SetCatchImage replaces a catch's image URL.
func (s *Store) SetCatchImage(ctx context.Context, id int64, url string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE catches SET image_url = ? WHERE id = ?`, url, id)
	return translate(err, "set catch image")
}

// DeleteCatch removes a catch and decrements its angler's catch count in the
// same transaction.
func (s *Store) DeleteCatch(ctx context.Context, c domain.Catch) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM catches WHERE id = ?`, c.ID)
		if err != nil {
			return translate(err, "delete catch")
		}
		if err := deleted(res, "catch", c.ID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE anglers
			SET catch_count = CASE WHEN catch_count > 0 THEN catch_count - 1 ELSE 0 END
			WHERE id = ?`, c.AnglerID)
		return translate(err, "decrement catch count")
	})
}
