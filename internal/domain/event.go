package domain

import (
	"strconv"
	"time"
)

// Catch event types published to the event feed.
const (
	EventCatchRecorded = "catch.recorded"
	EventCatchDeleted  = "catch.deleted"
)

// CatchEvent is the message published when a catch is recorded or removed.
type CatchEvent struct {
	Type       string    `json:"type"`
	CatchID    int64     `json:"catch_id"`
	AnglerID   int64     `json:"angler_id"`
	Catch      *Catch    `json:"catch,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key partitions events by angler so one angler's events stay ordered.
func (e CatchEvent) Key() string {
	return strconv.FormatInt(e.AnglerID, 10)
}

// NewCatchRecorded builds the event for a freshly persisted catch.
func NewCatchRecorded(c Catch) CatchEvent {
	return CatchEvent{
		Type:       EventCatchRecorded,
		CatchID:    c.ID,
		AnglerID:   c.AnglerID,
		Catch:      &c,
		OccurredAt: c.RecordedAt,
	}
}

// NewCatchDeleted builds the event for a removed catch.
func NewCatchDeleted(c Catch, at time.Time) CatchEvent {
	return CatchEvent{
		Type:       EventCatchDeleted,
		CatchID:    c.ID,
		AnglerID:   c.AnglerID,
		OccurredAt: at.UTC().Truncate(time.Second),
	}
}
