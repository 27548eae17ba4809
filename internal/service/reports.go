package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// recentCatchLimit is how many catches a profile shows.
const recentCatchLimit = 8

// ReportStore runs the grouped catch queries.
type ReportStore interface {
	AnglerByID(ctx context.Context, id int64) (domain.Angler, error)
	CatchesByAngler(ctx context.Context, anglerID int64, limit int) ([]domain.Catch, error)
	MasterAnglerCatches(ctx context.Context, anglerID int64) ([]domain.Catch, error)
	SpeciesCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error)
	ConditionCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error)
	WindCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error)
	BarometricCounts(ctx context.Context, anglerID int64) ([]domain.CountRow, error)
	CatchCountDrift(ctx context.Context) ([]domain.CatchCountDrift, error)
	RecountCatches(ctx context.Context, anglerID int64) error
}

// Report names one of the grouped catch tables.
type Report string

const (
	ReportSpecies    Report = "species"
	ReportWeather    Report = "weather"
	ReportWind       Report = "wind"
	ReportBarometric Report = "barometric"
)

// Reports builds angler profiles and the grouped catch tables.
type Reports struct {
	store  ReportStore
	logger *slog.Logger
}

func NewReports(store ReportStore, logger *slog.Logger) *Reports {
	return &Reports{store: store, logger: logger}
}

// Counts returns one grouped table for an angler, largest count first.
func (r *Reports) Counts(ctx context.Context, actor domain.Principal, anglerID int64, report Report) ([]domain.CountRow, error) {
	if err := requireAccess(actor, anglerID); err != nil {
		return nil, err
	}
	if _, err := r.store.AnglerByID(ctx, anglerID); err != nil {
		return nil, err
	}
	switch report {
	case ReportSpecies:
		return r.store.SpeciesCounts(ctx, anglerID)
	case ReportWeather:
		return r.store.ConditionCounts(ctx, anglerID)
	case ReportWind:
		return r.store.WindCounts(ctx, anglerID)
	case ReportBarometric:
		return r.store.BarometricCounts(ctx, anglerID)
	default:
		return nil, fmt.Errorf("%w: unknown report %q", domain.ErrInvalidInput, report)
	}
}

// Profile gathers an angler's recent catches, master-angler catches and
// all four grouped tables.
func (r *Reports) Profile(ctx context.Context, actor domain.Principal, anglerID int64) (domain.Profile, error) {
	if err := requireAccess(actor, anglerID); err != nil {
		return domain.Profile{}, err
	}
	angler, err := r.store.AnglerByID(ctx, anglerID)
	if err != nil {
		return domain.Profile{}, err
	}

	p := domain.Profile{Angler: angler}
	if p.RecentCatches, err = r.store.CatchesByAngler(ctx, anglerID, recentCatchLimit); err != nil {
		return domain.Profile{}, err
	}
	if p.MasterAnglerCatches, err = r.store.MasterAnglerCatches(ctx, anglerID); err != nil {
		return domain.Profile{}, err
	}
	if p.SpeciesCounts, err = r.store.SpeciesCounts(ctx, anglerID); err != nil {
		return domain.Profile{}, err
	}
	if p.ConditionCounts, err = r.store.ConditionCounts(ctx, anglerID); err != nil {
		return domain.Profile{}, err
	}
	if p.WindCounts, err = r.store.WindCounts(ctx, anglerID); err != nil {
		return domain.Profile{}, err
	}
	if p.BarometricCounts, err = r.store.BarometricCounts(ctx, anglerID); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// Reconcile finds anglers whose stored catch count disagrees with their
// catch rows. With fix set, each drifted count is recomputed.
func (r *Reports) Reconcile(ctx context.Context, fix bool) ([]domain.CatchCountDrift, error) {
	drift, err := r.store.CatchCountDrift(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drift {
		r.logger.Warn("catch count drift",
			"angler_id", d.AnglerID, "username", d.Username, "stored", d.Stored, "actual", d.Actual)
		if !fix {
			continue
		}
		if err := r.store.RecountCatches(ctx, d.AnglerID); err != nil {
			return drift, fmt.Errorf("recount angler %d: %w", d.AnglerID, err)
		}
	}
	return drift, nil
}
