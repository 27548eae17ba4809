package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/sqlstore"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlstore.Open(context.Background(), "sqlite", sqlstore.MemoryDSN, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type world struct {
	store   *sqlstore.Store
	angler  domain.Angler
	other   domain.Angler
	admin   domain.Angler
	walleye domain.Species
	bass    domain.Species
	lake    domain.Lake
}

func (w world) as(a domain.Angler) domain.Principal {
	return domain.Principal{AnglerID: a.ID, Username: a.Username, Admin: a.Admin}
}

func newWorld(t *testing.T) world {
	t.Helper()
	ctx := context.Background()
	s := newStore(t)

	mk := func(name string, admin bool) domain.Angler {
		a, err := s.CreateAngler(ctx, domain.Angler{Username: name, Email: name + "@example.com", PasswordHash: "x", Admin: admin})
		require.NoError(t, err)
		return a
	}
	w := world{store: s, angler: mk("crappie_queen", false), other: mk("bobber", false), admin: mk("warden", true)}

	var err error
	w.walleye, err = s.CreateSpecies(ctx, domain.Species{Name: "Walleye", MasterAnglerLength: 25})
	require.NoError(t, err)
	w.bass, err = s.CreateSpecies(ctx, domain.Species{Name: "Smallmouth Bass", MasterAnglerLength: 20})
	require.NoError(t, err)
	w.lake, err = s.CreateLake(ctx, domain.Lake{Name: "Lake Vermilion", State: "MN", ClosestTown: "Tower", Lat: 47.79, Lon: -92.35})
	require.NoError(t, err)
	return w
}

// --- fakes ---

type fakeWeather struct {
	mu    sync.Mutex
	obs   domain.Observation
	err   error
	calls []int64
}

func (f *fakeWeather) PointInTime(_ context.Context, _, _ float64, unix int64) (domain.Observation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, unix)
	return f.obs, f.err
}

type fakeGeocoder struct {
	coords domain.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Resolve(_ context.Context, _, _ string) (domain.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

type fakeForecaster struct {
	days []domain.DailyForecast
	lat  float64
	lon  float64
}

func (f *fakeForecaster) Forecast(_ context.Context, lat, lon float64) ([]domain.DailyForecast, error) {
	f.lat, f.lon = lat, lon
	return f.days, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CatchEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.CatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

var errWeatherDown = errors.New("503 from provider")

func ptr[T any](v T) *T { return &v }

func catchTime() time.Time {
	return time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
}
