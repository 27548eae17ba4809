package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultImageURL is used for catches recorded without a photo.
const DefaultImageURL = "/static/images/stock-fish.jpg"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Catch is a single enriched catch event. Weather fields and MasterAngler are
// fixed when the catch is recorded.
type Catch struct {
	ID            int64      `json:"id"`
	SpeciesID     int64      `json:"species_id"`
	SpeciesName   string     `json:"species_name,omitempty"`
	AnglerID      int64      `json:"angler_id"`
	LakeID        int64      `json:"lake_id"`
	LakeName      string     `json:"lake_name,omitempty"`
	Length        *float64   `json:"length"`
	Weight        *float64   `json:"weight"`
	Date          string     `json:"catch_date"`
	Time          string     `json:"catch_time"`
	Timestamp     int64      `json:"timestamp"`
	Pressure      float64    `json:"barometric_pressure"`
	Temperature   int        `json:"temperature"`
	Conditions    string     `json:"weather"`
	WindDirection WindBucket `json:"wind_direction"`
	WindSpeed     int        `json:"wind_speed"`
	LureID        *int64     `json:"lure_id"`
	ImageURL      string     `json:"image_url"`
	MasterAngler  bool       `json:"is_master_angler"`
	RecordedAt    time.Time  `json:"recorded_at"`
}

// CatchSubmission is the raw input for a new catch.
type CatchSubmission struct {
	SpeciesID int64    `json:"species_id" validate:"required,gt=0"`
	LakeID    int64    `json:"lake_id" validate:"required,gt=0"`
	Length    *float64 `json:"length" validate:"omitempty,gte=0,lte=60"`
	Weight    *float64 `json:"weight" validate:"omitempty,gte=0,lte=60"`
	Date      string   `json:"date" validate:"required"`
	Time      string   `json:"time" validate:"required"`
	LureID    *int64   `json:"lure_id" validate:"omitempty,gt=0"`
	ImageURL  string   `json:"image_url" validate:"omitempty,max=2048"`
}

// CatchUpdate replaces the editable fields of a catch.
type CatchUpdate struct {
	SpeciesID int64    `json:"species_id" validate:"required,gt=0"`
	LakeID    int64    `json:"lake_id" validate:"required,gt=0"`
	Length    *float64 `json:"length" validate:"omitempty,gte=0,lte=60"`
	Weight    *float64 `json:"weight" validate:"omitempty,gte=0,lte=60"`
	ImageURL  string   `json:"image_url" validate:"omitempty,max=2048"`
}

// NormalizeTimestamp combines a calendar date and a time of day, read in loc
// without conversion, into a single instant.
func NormalizeTimestamp(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	if loc == nil {
		loc = time.Local
	}

	if _, err := time.Parse(dateLayout, date); err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}
	if strings.Count(timeOfDay, ":") == 1 {
		timeOfDay += ":00"
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q must be HH:MM or HH:MM:SS", ErrInvalidInput, timeOfDay)
	}

	ts, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ts, nil
}

// QualifiesMasterAngler reports whether a catch of the given length meets a
// species threshold. A missing length never qualifies.
func QualifiesMasterAngler(length *float64, threshold float64) bool {
	return length != nil && *length >= threshold
}

// EnrichCatch builds the catch to persist from a validated submission, its
// normalized timestamp, the species record and the weather observed at the
// lake at that instant. recordedAt is the wall-clock time of the submission.
func EnrichCatch(anglerID int64, sub CatchSubmission, ts time.Time, species Species, obs Observation, recordedAt time.Time) Catch {
	image := strings.TrimSpace(sub.ImageURL)
	if image == "" {
		image = DefaultImageURL
	}

	return Catch{
		SpeciesID:     species.ID,
		SpeciesName:   species.Name,
		AnglerID:      anglerID,
		LakeID:        sub.LakeID,
		Length:        sub.Length,
		Weight:        sub.Weight,
		Date:          ts.Format(dateLayout),
		Time:          ts.Format(timeLayout),
		Timestamp:     ts.Unix(),
		Pressure:      obs.Pressure,
		Temperature:   int(math.Round(obs.Temperature)),
		Conditions:    obs.Description,
		WindDirection: obs.WindDirection,
		WindSpeed:     int(math.Round(obs.WindSpeed)),
		LureID:        sub.LureID,
		ImageURL:      image,
		MasterAngler:  QualifiesMasterAngler(sub.Length, species.MasterAnglerLength),
		RecordedAt:    recordedAt.UTC().Truncate(time.Second),
	}
}

// ApplyUpdate returns c with the editable fields replaced. Weather fields
// and the master-angler flag are left untouched.
func (c Catch) ApplyUpdate(upd CatchUpdate) Catch {
	c.SpeciesID = upd.SpeciesID
	c.LakeID = upd.LakeID
	c.Length = upd.Length
	c.Weight = upd.Weight
	if img := strings.TrimSpace(upd.ImageURL); img != "" {
		c.ImageURL = img
	}
	c.SpeciesName = ""
	c.LakeName = ""
	return c
}
