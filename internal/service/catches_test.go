package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

type fakePhotos struct {
	url  string
	err  error
	body []byte
}

func (f *fakePhotos) Upload(_ context.Context, anglerID, catchID int64, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.body, _ = io.ReadAll(r)
	return fmt.Sprintf("%s/%d/%d.jpg", f.url, anglerID, catchID), nil
}

type catchesHarness struct {
	world
	svc     *Catches
	weather *fakeWeather
	events  *recordingPublisher
	metrics *observability.Metrics
}

func newCatchesHarness(t *testing.T, photos PhotoUploader) catchesHarness {
	t.Helper()
	w := newWorld(t)
	h := catchesHarness{
		world: w,
		weather: &fakeWeather{obs: domain.Observation{
			Pressure:      29.92,
			Temperature:   71.6,
			WindSpeed:     9.4,
			WindDirection: domain.WindSouth,
			Description:   "scattered clouds",
		}},
		events:  &recordingPublisher{},
		metrics: observability.NewMetricsForTesting(),
	}
	h.svc = NewCatches(CatchesConfig{
		Store:    w.store,
		Weather:  h.weather,
		Events:   h.events,
		Photos:   photos,
		Clock:    clockwork.NewFakeClockAt(catchTime()),
		Location: time.UTC,
		Metrics:  h.metrics,
		Logger:   discardLogger(),
	})
	return h
}

func (h catchesHarness) submission(species domain.Species, length float64) domain.CatchSubmission {
	return domain.CatchSubmission{
		SpeciesID: species.ID,
		LakeID:    h.lake.ID,
		Length:    ptr(length),
		Date:      "2024-06-15",
		Time:      "06:45",
	}
}

func (h catchesHarness) catchCount(t *testing.T) int {
	t.Helper()
	a, err := h.store.AnglerByID(context.Background(), h.angler.ID)
	require.NoError(t, err)
	return a.CatchCount
}

func TestRecord_EnrichesAndPersists(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()

	c, err := h.svc.Record(ctx, h.as(h.angler), h.submission(h.walleye, 25.0))
	require.NoError(t, err)

	assert.NotZero(t, c.ID)
	assert.Equal(t, h.angler.ID, c.AnglerID)
	assert.Equal(t, "2024-06-15", c.Date)
	assert.Equal(t, "06:45:00", c.Time)
	assert.Equal(t, time.Date(2024, 6, 15, 6, 45, 0, 0, time.UTC).Unix(), c.Timestamp)
	assert.Equal(t, 29.92, c.Pressure)
	assert.Equal(t, 72, c.Temperature)
	assert.Equal(t, 9, c.WindSpeed)
	assert.Equal(t, domain.WindSouth, c.WindDirection)
	assert.Equal(t, "scattered clouds", c.Conditions)
	assert.Equal(t, domain.DefaultImageURL, c.ImageURL)
	assert.True(t, c.MasterAngler)
	assert.Equal(t, catchTime(), c.RecordedAt)
	assert.Equal(t, "Walleye", c.SpeciesName)
	assert.Equal(t, "Lake Vermilion", c.LakeName)

	require.Len(t, h.weather.calls, 1)
	assert.Equal(t, c.Timestamp, h.weather.calls[0])

	assert.Equal(t, 1, h.catchCount(t))
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.CatchesRecorded), 0)

	require.Len(t, h.events.events, 1)
	assert.Equal(t, domain.EventCatchRecorded, h.events.events[0].Type)
	assert.Equal(t, c.ID, h.events.events[0].CatchID)
}

func TestRecord_ReflectedInMostCaughtSpecies(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)

	_, err := h.svc.Record(ctx, actor, h.submission(h.bass, 14))
	require.NoError(t, err)
	_, err = h.svc.Record(ctx, actor, h.submission(h.walleye, 18))
	require.NoError(t, err)
	_, err = h.svc.Record(ctx, actor, h.submission(h.walleye, 22))
	require.NoError(t, err)

	rows, err := h.store.SpeciesCounts(ctx, h.angler.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.CountRow{Label: "Walleye", Count: 2}, rows[0])
	assert.Equal(t, 3, h.catchCount(t))
}

func TestRecord_WeatherFailurePersistsNothing(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	h.weather.err = fmt.Errorf("%w: %w", domain.ErrExternalService, errWeatherDown)

	_, err := h.svc.Record(ctx, h.as(h.angler), h.submission(h.walleye, 30))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.True(t, IsRetryable(err))

	catches, err := h.store.CatchesByAngler(ctx, h.angler.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, catches)
	assert.Equal(t, 0, h.catchCount(t))
	assert.Empty(t, h.events.events)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.EnrichmentFailures), 0)
}

func TestRecord_MasterAnglerBoundary(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)

	short, err := h.svc.Record(ctx, actor, h.submission(h.walleye, 24.99))
	require.NoError(t, err)
	assert.False(t, short.MasterAngler)

	sub := h.submission(h.walleye, 0)
	sub.Length = nil
	none, err := h.svc.Record(ctx, actor, sub)
	require.NoError(t, err)
	assert.False(t, none.MasterAngler)
	assert.Nil(t, none.Length)
}

func TestRecord_ValidationFailsBeforeWeather(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)

	tests := []struct {
		name   string
		mutate func(*domain.CatchSubmission)
	}{
		{"length over 60", func(s *domain.CatchSubmission) { s.Length = ptr(60.5) }},
		{"negative weight", func(s *domain.CatchSubmission) { s.Weight = ptr(-1.0) }},
		{"missing species", func(s *domain.CatchSubmission) { s.SpeciesID = 0 }},
		{"missing date", func(s *domain.CatchSubmission) { s.Date = "" }},
		{"bad date", func(s *domain.CatchSubmission) { s.Date = "06/15/2024" }},
		{"bad time", func(s *domain.CatchSubmission) { s.Time = "dawn" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := h.submission(h.walleye, 20)
			tt.mutate(&sub)
			_, err := h.svc.Record(ctx, actor, sub)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, h.weather.calls)
}

func TestRecord_UnknownLake(t *testing.T) {
	h := newCatchesHarness(t, nil)
	sub := h.submission(h.walleye, 20)
	sub.LakeID = 404

	_, err := h.svc.Record(context.Background(), h.as(h.angler), sub)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, h.weather.calls)
}

func TestRecord_LureMustBelongToActor(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()

	lure, err := h.store.CreateLure(ctx, domain.Lure{Brand: "Rapala", Name: "Shad Rap", AnglerID: h.other.ID})
	require.NoError(t, err)

	sub := h.submission(h.walleye, 20)
	sub.LureID = ptr(lure.ID)
	_, err = h.svc.Record(ctx, h.as(h.angler), sub)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, h.catchCount(t))
}

func TestRecord_PublishFailureKeepsCatch(t *testing.T) {
	h := newCatchesHarness(t, nil)
	h.events.err = errors.New("broker down")

	c, err := h.svc.Record(context.Background(), h.as(h.angler), h.submission(h.walleye, 20))
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, 1, h.catchCount(t))
}

func TestRecord_RequiresAngler(t *testing.T) {
	h := newCatchesHarness(t, nil)
	_, err := h.svc.Record(context.Background(), domain.Principal{}, h.submission(h.walleye, 20))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCatches_AccessControl(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()

	c, err := h.svc.Record(ctx, h.as(h.angler), h.submission(h.walleye, 20))
	require.NoError(t, err)

	_, err = h.svc.Get(ctx, h.as(h.other), c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = h.svc.List(ctx, h.as(h.other), h.angler.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = h.svc.Delete(ctx, h.as(h.other), c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, h.catchCount(t))

	got, err := h.svc.Get(ctx, h.as(h.admin), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestCatches_UpdateKeepsWeatherAndFlag(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)

	c, err := h.svc.Record(ctx, actor, h.submission(h.walleye, 26))
	require.NoError(t, err)
	require.True(t, c.MasterAngler)

	updated, err := h.svc.Update(ctx, actor, c.ID, domain.CatchUpdate{
		SpeciesID: h.bass.ID,
		LakeID:    h.lake.ID,
		Length:    ptr(12.0),
		Weight:    ptr(1.5),
		ImageURL:  "https://example.com/smallie.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Smallmouth Bass", updated.SpeciesName)
	assert.Equal(t, 12.0, *updated.Length)
	assert.Equal(t, 1.5, *updated.Weight)
	assert.Equal(t, "https://example.com/smallie.jpg", updated.ImageURL)
	assert.True(t, updated.MasterAngler)
	assert.Equal(t, c.Pressure, updated.Pressure)
	assert.Equal(t, c.Conditions, updated.Conditions)
	assert.Len(t, h.weather.calls, 1)

	_, err = h.svc.Update(ctx, actor, c.ID, domain.CatchUpdate{SpeciesID: 999, LakeID: h.lake.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatches_DeleteDecrementsCounter(t *testing.T) {
	h := newCatchesHarness(t, nil)
	ctx := context.Background()
	actor := h.as(h.angler)

	c, err := h.svc.Record(ctx, actor, h.submission(h.walleye, 20))
	require.NoError(t, err)
	require.Equal(t, 1, h.catchCount(t))

	require.NoError(t, h.svc.Delete(ctx, actor, c.ID))
	assert.Equal(t, 0, h.catchCount(t))

	_, err = h.svc.Get(ctx, actor, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, h.events.events, 2)
	assert.Equal(t, domain.EventCatchDeleted, h.events.events[1].Type)
}

func TestAttachPhoto(t *testing.T) {
	photos := &fakePhotos{url: "https://photos.example.com"}
	h := newCatchesHarness(t, photos)
	ctx := context.Background()
	actor := h.as(h.angler)

	c, err := h.svc.Record(ctx, actor, h.submission(h.walleye, 20))
	require.NoError(t, err)

	updated, err := h.svc.AttachPhoto(ctx, actor, c.ID, bytes.NewReader([]byte("jpeg bytes")))
	require.NoError(t, err)
	want := fmt.Sprintf("https://photos.example.com/%d/%d.jpg", h.angler.ID, c.ID)
	assert.Equal(t, want, updated.ImageURL)
	assert.Equal(t, []byte("jpeg bytes"), photos.body)

	stored, err := h.svc.Get(ctx, actor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.ImageURL)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.PhotosUploaded), 0)

	_, err = h.svc.AttachPhoto(ctx, h.as(h.other), c.ID, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAttachPhoto_NotConfigured(t *testing.T) {
	h := newCatchesHarness(t, nil)
	_, err := h.svc.AttachPhoto(context.Background(), h.as(h.angler), 1, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
