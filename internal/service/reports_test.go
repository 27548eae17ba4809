package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

func TestReports_Profile(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)
	reports := NewReports(h.store, discardLogger())

	for i := 0; i < 9; i++ {
		_, err := h.svc.Record(ctx, actor, h.submission(h.walleye, 20))
		require.NoError(t, err)
	}
	h.weather.obs.Pressure = 30.6
	h.weather.obs.WindDirection = domain.WindNorth
	h.weather.obs.Description = "clear sky"
	_, err := h.svc.Record(ctx, actor, h.submission(h.bass, 21))
	require.NoError(t, err)

	p, err := reports.Profile(ctx, actor, h.angler.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, p.Angler.CatchCount)
	assert.Len(t, p.RecentCatches, 8)
	require.Len(t, p.MasterAnglerCatches, 1)
	assert.Equal(t, "Smallmouth Bass", p.MasterAnglerCatches[0].SpeciesName)

	if diff := cmp.Diff([]domain.CountRow{
		{Label: "Walleye", Count: 9},
		{Label: "Smallmouth Bass", Count: 1},
	}, p.SpeciesCounts); diff != "" {
		t.Errorf("species counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.CountRow{
		{Label: "scattered clouds", Count: 9},
		{Label: "clear sky", Count: 1},
	}, p.ConditionCounts); diff != "" {
		t.Errorf("weather counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.CountRow{
		{Label: "S", Count: 9},
		{Label: "N", Count: 1},
	}, p.WindCounts); diff != "" {
		t.Errorf("wind counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.CountRow{
		{Label: domain.BarometricMedium, Count: 9},
		{Label: domain.BarometricHigh, Count: 1},
	}, p.BarometricCounts); diff != "" {
		t.Errorf("barometric counts mismatch (-want +got):\n%s", diff)
	}
}

func TestReports_Access(t *testing.T) {
	w := newWorld(t)
	reports := NewReports(w.store, discardLogger())
	ctx := context.Background()

	_, err := reports.Profile(ctx, w.as(w.other), w.angler.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = reports.Profile(ctx, w.as(w.admin), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rows, err := reports.Counts(ctx, w.as(w.angler), w.angler.ID, ReportWind)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = reports.Counts(ctx, w.as(w.angler), w.angler.ID, Report("moon"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type driftStore struct {
	ReportStore
	drift     []domain.CatchCountDrift
	recounted []int64
}

func (d *driftStore) CatchCountDrift(context.Context) ([]domain.CatchCountDrift, error) {
	return d.drift, nil
}

func (d *driftStore) RecountCatches(_ context.Context, anglerID int64) error {
	d.recounted = append(d.recounted, anglerID)
	return nil
}

func TestReports_ReconcileNoDrift(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	reports := NewReports(h.store, discardLogger())

	c, err := h.svc.Record(ctx, h.as(h.angler), h.submission(h.walleye, 20))
	require.NoError(t, err)
	_, err = h.svc.Record(ctx, h.as(h.angler), h.submission(h.bass, 12))
	require.NoError(t, err)
	require.NoError(t, h.svc.Delete(ctx, h.as(h.admin), c.ID))

	drift, err := reports.Reconcile(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, drift)
}

func TestReports_ReconcileFix(t *testing.T) {
	store := &driftStore{drift: []domain.CatchCountDrift{
		{AnglerID: 3, Username: "walter", Stored: 5, Actual: 4},
		{AnglerID: 8, Username: "gill", Stored: 0, Actual: 2},
	}}
	reports := NewReports(store, discardLogger())

	drift, err := reports.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, drift, 2)
	assert.Empty(t, store.recounted)

	_, err = reports.Reconcile(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 8}, store.recounted)
}
