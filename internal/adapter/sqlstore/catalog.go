package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// ---- species ----

// ListSpecies returns all species ordered by name.
func (s *Store) ListSpecies(ctx context.Context) ([]domain.Species, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, master_angler_length FROM species ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	defer rows.Close()

	out := []domain.Species{}
	for rows.Next() {
		var sp domain.Species
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.MasterAnglerLength); err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// SpeciesByID loads one species.
func (s *Store) SpeciesByID(ctx context.Context, id int64) (domain.Species, error) {
	var sp domain.Species
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, master_angler_length FROM species WHERE id = ?`, id).
		Scan(&sp.ID, &sp.Name, &sp.MasterAnglerLength)
	if err != nil {
		return domain.Species{}, notFound(err, "species", id)
	}
	return sp, nil
}

// CreateSpecies inserts a species. Names are unique.
func (s *Store) CreateSpecies(ctx context.Context, sp domain.Species) (domain.Species, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO species (name, master_angler_length) VALUES (?, ?)`,
		sp.Name, sp.MasterAnglerLength)
	if err != nil {
		return domain.Species{}, translate(err, "insert species")
	}
	if sp.ID, err = res.LastInsertId(); err != nil {
		return domain.Species{}, fmt.Errorf("insert species: %w", err)
	}
	return sp, nil
}

// UpdateSpecies saves a species name and threshold. Existing catches keep
// their master-angler flags.
func (s *Store) UpdateSpecies(ctx context.Context, sp domain.Species) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE species SET name = ?, master_angler_length = ? WHERE id = ?`,
		sp.Name, sp.MasterAnglerLength, sp.ID)
	return translate(err, "update species")
}

// DeleteSpecies removes a species that no catch references.
func (s *Store) DeleteSpecies(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM species WHERE id = ?`, id)
	if err != nil {
		return translate(err, "delete species")
	}
	return deleted(res, "species", id)
}

// ---- lakes ----

const lakeColumns = `id, name, state, closest_town, latitude, longitude`

func scanLake(row scanner) (domain.Lake, error) {
	var l domain.Lake
	err := row.Scan(&l.ID, &l.Name, &l.State, &l.ClosestTown, &l.Lat, &l.Lon)
	return l, err
}

func (s *Store) queryLakes(ctx context.Context, query string, args ...any) ([]domain.Lake, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lakes: %w", err)
	}
	defer rows.Close()

	out := []domain.Lake{}
	for rows.Next() {
		l, err := scanLake(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lake: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListLakes returns all lakes ordered by state then name.
func (s *Store) ListLakes(ctx context.Context) ([]domain.Lake, error) {
	return s.queryLakes(ctx, `SELECT `+lakeColumns+` FROM lakes ORDER BY state, name`)
}

// SearchLakes returns lakes whose name contains q, case-insensitively.
func (s *Store) SearchLakes(ctx context.Context, q string) ([]domain.Lake, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	return s.queryLakes(ctx,
		`SELECT `+lakeColumns+` FROM lakes WHERE LOWER(name) LIKE ? ORDER BY state, name`, pattern)
}

// LakeByID loads one lake.
func (s *Store) LakeByID(ctx context.Context, id int64) (domain.Lake, error) {
	l, err := scanLake(s.db.QueryRowContext(ctx, `SELECT `+lakeColumns+` FROM lakes WHERE id = ?`, id))
	if err != nil {
		return domain.Lake{}, notFound(err, "lake", id)
	}
	return l, nil
}

// CreateLake inserts a lake with already resolved coordinates.
func (s *Store) CreateLake(ctx context.Context, l domain.Lake) (domain.Lake, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lakes (name, state, closest_town, latitude, longitude) VALUES (?, ?, ?, ?, ?)`,
		l.Name, l.State, l.ClosestTown, l.Lat, l.Lon)
	if err != nil {
		return domain.Lake{}, translate(err, "insert lake")
	}
	if l.ID, err = res.LastInsertId(); err != nil {
		return domain.Lake{}, fmt.Errorf("insert lake: %w", err)
	}
	return l, nil
}

// UpdateLake saves name, state and closest town. Coordinates are never
// rewritten.
func (s *Store) UpdateLake(ctx context.Context, l domain.Lake) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE lakes SET name = ?, state = ?, closest_town = ? WHERE id = ?`,
		l.Name, l.State, l.ClosestTown, l.ID)
	return translate(err, "update lake")
}

// DeleteLake removes a lake that no catch references.
func (s *Store) DeleteLake(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lakes WHERE id = ?`, id)
	if err != nil {
		return translate(err, "delete lake")
	}
	return deleted(res, "lake", id)
}

// ---- lures ----

const lureColumns = `id, brand, name, color, size, angler_id`

func scanLure(row scanner) (domain.Lure, error) {
	var l domain.Lure
	err := row.Scan(&l.ID, &l.Brand, &l.Name, &l.Color, &l.Size, &l.AnglerID)
	return l, err
}

// CreateLure adds a lure to an angler's tackle box.
func (s *Store) CreateLure(ctx context.Context, l domain.Lure) (domain.Lure, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO lures (brand, name, color, size, angler_id) VALUES (?, ?, ?, ?, ?)`,
		l.Brand, l.Name, l.Color, l.Size, l.AnglerID)
	if err != nil {
		return domain.Lure{}, translate(err, "insert lure")
	}
	if l.ID, err = res.LastInsertId(); err != nil {
		return domain.Lure{}, fmt.Errorf("insert lure: %w", err)
	}
	return l, nil
}

// LureByID loads one lure.
func (s *Store) LureByID(ctx context.Context, id int64) (domain.Lure, error) {
	l, err := scanLure(s.db.QueryRowContext(ctx, `SELECT `+lureColumns+` FROM lures WHERE id = ?`, id))
	if err != nil {
		return domain.Lure{}, notFound(err, "lure", id)
	}
	return l, nil
}

// LuresByAngler returns an angler's tackle box ordered by brand.
func (s *Store) LuresByAngler(ctx context.Context, anglerID int64) ([]domain.Lure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lureColumns+` FROM lures WHERE angler_id = ? ORDER BY brand, name, id`, anglerID)
	if err != nil {
		return nil, fmt.Errorf("list lures: %w", err)
	}
	defer rows.Close()

	out := []domain.Lure{}
	for rows.Next() {
		l, err := scanLure(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lure: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
