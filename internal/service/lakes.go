package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// LakeStore persists lakes.
type LakeStore interface {
	ListLakes(ctx context.Context) ([]domain.Lake, error)
	SearchLakes(ctx context.Context, q string) ([]domain.Lake, error)
	LakeByID(ctx context.Context, id int64) (domain.Lake, error)
	CreateLake(ctx context.Context, l domain.Lake) (domain.Lake, error)
	UpdateLake(ctx context.Context, l domain.Lake) error
	DeleteLake(ctx context.Context, id int64) error
}

// LakeInput is the editable part of a lake.
type LakeInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	State       string `json:"state" validate:"required,len=2,alpha"`
	ClosestTown string `json:"closest_town" validate:"required,max=100"`
}

func (in LakeInput) normalized() LakeInput {
	in.Name = strings.TrimSpace(in.Name)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.ClosestTown = strings.TrimSpace(in.ClosestTown)
	return in
}

// LakeForecast is a lake with its upcoming daily forecast.
type LakeForecast struct {
	Lake domain.Lake            `json:"lake"`
	Days []domain.DailyForecast `json:"days"`
}

// Lakes manages the lake catalog and lake forecasts.
type Lakes struct {
	store      LakeStore
	geocoder   domain.Geocoder
	forecaster domain.Forecaster
	logger     *slog.Logger
}

func NewLakes(store LakeStore, geocoder domain.Geocoder, forecaster domain.Forecaster, logger *slog.Logger) *Lakes {
	return &Lakes{store: store, geocoder: geocoder, forecaster: forecaster, logger: logger}
}

func (l *Lakes) List(ctx context.Context) ([]domain.Lake, error) {
	return l.store.ListLakes(ctx)
}

// Search matches lake names containing q. A blank query lists every lake.
func (l *Lakes) Search(ctx context.Context, q string) ([]domain.Lake, error) {
	if strings.TrimSpace(q) == "" {
		return l.store.ListLakes(ctx)
	}
	return l.store.SearchLakes(ctx, q)
}

func (l *Lakes) Get(ctx context.Context, id int64) (domain.Lake, error) {
	return l.store.LakeByID(ctx, id)
}

// Create geocodes the closest town and stores the lake. A geocoding failure
// aborts without writing anything.
func (l *Lakes) Create(ctx context.Context, actor domain.Principal, in LakeInput) (domain.Lake, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Lake{}, err
	}
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.Lake{}, err
	}

	coords, err := l.geocoder.Resolve(ctx, in.ClosestTown, in.State)
	if err != nil {
		return domain.Lake{}, fmt.Errorf("locate %s, %s: %w", in.ClosestTown, in.State, err)
	}

	lake, err := l.store.CreateLake(ctx, domain.Lake{
		Name:        in.Name,
		State:       in.State,
		ClosestTown: in.ClosestTown,
		Lat:         coords.Lat,
		Lon:         coords.Lon,
	})
	if err != nil {
		return domain.Lake{}, err
	}
	l.logger.Info("lake added", "lake_id", lake.ID, "name", lake.Name, "lat", lake.Lat, "lon", lake.Lon)
	return lake, nil
}

// Update renames a lake. Its coordinates stay as first resolved.
func (l *Lakes) Update(ctx context.Context, actor domain.Principal, id int64, in LakeInput) (domain.Lake, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Lake{}, err
	}
	in = in.normalized()
	if err := check(in); err != nil {
		return domain.Lake{}, err
	}

	lake, err := l.store.LakeByID(ctx, id)
	if err != nil {
		return domain.Lake{}, err
	}
	lake.Name = in.Name
	lake.State = in.State
	lake.ClosestTown = in.ClosestTown
	if err := l.store.UpdateLake(ctx, lake); err != nil {
		return domain.Lake{}, err
	}
	return lake, nil
}

func (l *Lakes) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return l.store.DeleteLake(ctx, id)
}

// Forecast returns the daily forecast at a lake's stored coordinates.
func (l *Lakes) Forecast(ctx context.Context, id int64) (LakeForecast, error) {
	lake, err := l.store.LakeByID(ctx, id)
	if err != nil {
		return LakeForecast{}, err
	}
	days, err := l.forecaster.Forecast(ctx, lake.Lat, lake.Lon)
	if err != nil {
		return LakeForecast{}, fmt.Errorf("forecast for lake %d: %w", id, err)
	}
	return LakeForecast{Lake: lake, Days: days}, nil
}
