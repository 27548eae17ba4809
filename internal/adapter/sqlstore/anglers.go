package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const anglerColumns = `id, username, email, password_hash, catch_count, is_admin`

func scanAngler(row scanner) (domain.Angler, error) {
	var a domain.Angler
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CatchCount, &a.Admin)
	return a, err
}

// CreateAngler inserts a new angler with a zero catch count.
func (s *Store) CreateAngler(ctx context.Context, a domain.Angler) (domain.Angler, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO anglers (username, email, password_hash, catch_count, is_admin) VALUES (?, ?, ?, 0, ?)`,
		a.Username, a.Email, a.PasswordHash, a.Admin)
	if err != nil {
		return domain.Angler{}, translate(err, "insert angler")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Angler{}, fmt.Errorf("insert angler: %w", err)
	}
	a.ID = id
	a.CatchCount = 0
	return a, nil
}

// AnglerByID loads one angler.
func (s *Store) AnglerByID(ctx context.Context, id int64) (domain.Angler, error) {
	a, err := scanAngler(s.db.QueryRowContext(ctx,
		`SELECT `+anglerColumns+` FROM anglers WHERE id = ?`, id))
	if err != nil {
		return domain.Angler{}, notFound(err, "angler", id)
	}
	return a, nil
}

// AnglerByUsername loads one angler by exact username.
func (s *Store) AnglerByUsername(ctx context.Context, username string) (domain.Angler, error) {
	a, err := scanAngler(s.db.QueryRowContext(ctx,
		`SELECT `+anglerColumns+` FROM anglers WHERE username = ?`, username))
	if err != nil {
		return domain.Angler{}, notFound(err, "angler", username)
	}
	return a, nil
}

// ListAnglers returns every angler ordered by id.
func (s *Store) ListAnglers(ctx context.Context) ([]domain.Angler, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+anglerColumns+` FROM anglers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list anglers: %w", err)
	}
	defer rows.Close()

	out := []domain.Angler{}
	for rows.Next() {
		a, err := scanAngler(rows)
		if err != nil {
			return nil, fmt.Errorf("scan angler: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAngler saves a new username and email.
func (s *Store) UpdateAngler(ctx context.Context, a domain.Angler) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE anglers SET username = ?, email = ? WHERE id = ?`,
		a.Username, a.Email, a.ID)
	return translate(err, "update angler")
}

// DeleteAngler removes an angler with all of their catches and lures.
func (s *Store) DeleteAngler(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catches WHERE angler_id = ?`, id); err != nil {
			return translate(err, "delete angler catches")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM lures WHERE angler_id = ?`, id); err != nil {
			return translate(err, "delete angler lures")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM anglers WHERE id = ?`, id)
		if err != nil {
			return translate(err, "delete angler")
		}
		return deleted(res, "angler", id)
	})
}

// CatchCountDrift lists anglers whose stored catch count differs from the
// number of catch rows they own.
func (s *Store) CatchCountDrift(ctx context.Context) ([]domain.CatchCountDrift, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.username, a.catch_count, COUNT(c.id) AS actual
		FROM anglers a
		LEFT JOIN catches c ON c.angler_id = a.id
		GROUP BY a.id, a.username, a.catch_count
		HAVING a.catch_count <> COUNT(c.id)
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("query catch count drift: %w", err)
	}
	defer rows.Close()

	var out []domain.CatchCountDrift
	for rows.Next() {
		var d domain.CatchCountDrift
		if err := rows.Scan(&d.AnglerID, &d.Username, &d.Stored, &d.Actual); err != nil {
			return nil, fmt.Errorf("scan catch count drift: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RecountCatches resets an angler's stored catch count from their catch rows.
func (s *Store) RecountCatches(ctx context.Context, anglerID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE anglers SET catch_count = (SELECT COUNT(*) FROM catches WHERE angler_id = ?) WHERE id = ?`,
		anglerID, anglerID)
	return translate(err, "recount catches")
}
