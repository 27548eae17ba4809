package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func testPublisher(w messageWriter) *Publisher {
	return &Publisher{
		writer:  w,
		metrics: observability.NewMetricsForTesting(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func sampleCatch() domain.Catch {
	length := 26.5
	return domain.Catch{
		ID:            9,
		SpeciesID:     2,
		AnglerID:      3,
		LakeID:        4,
		Length:        &length,
		Date:          "2024-06-01",
		Time:          "06:30:00",
		Pressure:      30.02,
		Temperature:   64,
		Conditions:    "clear sky",
		WindDirection: domain.WindWest,
		WindSpeed:     8,
		ImageURL:      domain.DefaultImageURL,
		MasterAngler:  true,
		RecordedAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	event := domain.NewCatchRecorded(sampleCatch())

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("3"), msg.Key)
	assert.Contains(t, string(msg.Value), `"type":"catch.recorded"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("catch.recorded"), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-06-01T12:00:00Z"), msg.Headers[1].Value)

	var decoded domain.CatchEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.NotNil(t, decoded.Catch)
	assert.Equal(t, int64(9), decoded.CatchID)
	assert.True(t, decoded.Catch.MasterAngler)
}

func TestPublish_WritesAllEvents(t *testing.T) {
	w := &recordingWriter{}
	p := testPublisher(w)

	c := sampleCatch()
	err := p.Publish(context.Background(),
		domain.NewCatchRecorded(c),
		domain.NewCatchDeleted(c, time.Date(2024, 6, 2, 8, 0, 0, 500, time.UTC)),
	)
	require.NoError(t, err)

	require.Len(t, w.msgs, 2)
	assert.Equal(t, []byte("catch.deleted"), w.msgs[1].Headers[0].Value)
	assert.NotContains(t, string(w.msgs[1].Value), `"catch":`)
	assert.InDelta(t, 2, testutil.ToFloat64(p.metrics.EventsPublished.WithLabelValues("success")), 0)
}

func TestPublish_Empty(t *testing.T) {
	w := &recordingWriter{}
	p := testPublisher(w)

	require.NoError(t, p.Publish(context.Background()))
	assert.Empty(t, w.msgs)
}

func TestPublish_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p := testPublisher(w)

	err := p.Publish(context.Background(), domain.NewCatchRecorded(sampleCatch()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
	assert.InDelta(t, 1, testutil.ToFloat64(p.metrics.EventsPublished.WithLabelValues("error")), 0)
}
