package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
)

// CatchStore persists catches together with the catalog rows they reference.
type CatchStore interface {
	LakeByID(ctx context.Context, id int64) (domain.Lake, error)
	SpeciesByID(ctx context.Context, id int64) (domain.Species, error)
	LureByID(ctx context.Context, id int64) (domain.Lure, error)
	InsertCatch(ctx context.Context, c domain.Catch) (domain.Catch, error)
	CatchByID(ctx context.Context, id int64) (domain.Catch, error)
	CatchesByAngler(ctx context.Context, anglerID int64, limit int) ([]domain.Catch, error)
	UpdateCatch(ctx context.Context, c domain.Catch) error
	SetCatchImage(ctx context.Context, id int64, url string) error
	DeleteCatch(ctx context.Context, c domain.Catch) error
}

// EventPublisher delivers catch events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.CatchEvent) error
}

// PhotoUploader stores a catch photo and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, anglerID, catchID int64, r io.Reader) (string, error)
}

// CatchesConfig holds the collaborators of Catches. Events and Photos are
// optional.
type CatchesConfig struct {
	Store    CatchStore
	Weather  domain.WeatherObserver
	Events   EventPublisher
	Photos   PhotoUploader
	Clock    clockwork.Clock
	Location *time.Location
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Catches records, edits and removes catches.
type Catches struct {
	store   CatchStore
	weather domain.WeatherObserver
	events  EventPublisher
	photos  PhotoUploader
	clock   clockwork.Clock
	loc     *time.Location
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewCatches(cfg CatchesConfig) *Catches {
	c := &Catches{
		store:   cfg.Store,
		weather: cfg.Weather,
		events:  cfg.Events,
		photos:  cfg.Photos,
		clock:   cfg.Clock,
		loc:     cfg.Location,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	return c
}

// Record enriches a submission with the weather at the lake at the catch
// time and persists it for the actor. If the weather lookup fails nothing
// is written and the angler's catch count is unchanged.
func (c *Catches) Record(ctx context.Context, actor domain.Principal, sub domain.CatchSubmission) (domain.Catch, error) {
	if err := requireAngler(actor); err != nil {
		return domain.Catch{}, err
	}
	if err := check(sub); err != nil {
		return domain.Catch{}, err
	}
	ts, err := domain.NormalizeTimestamp(sub.Date, sub.Time, c.loc)
	if err != nil {
		return domain.Catch{}, err
	}

	lake, err := c.store.LakeByID(ctx, sub.LakeID)
	if err != nil {
		return domain.Catch{}, err
	}
	species, err := c.store.SpeciesByID(ctx, sub.SpeciesID)
	if err != nil {
		return domain.Catch{}, err
	}
	if err := c.checkLure(ctx, actor, sub.LureID); err != nil {
		return domain.Catch{}, err
	}

	obs, err := c.weather.PointInTime(ctx, lake.Lat, lake.Lon, ts.Unix())
	if err != nil {
		c.metrics.EnrichmentFailures.Inc()
		c.logger.Warn("catch weather lookup failed",
			"angler_id", actor.AnglerID, "lake_id", lake.ID, "unix", ts.Unix(), "error", err)
		return domain.Catch{}, fmt.Errorf("weather at %s on %s: %w", lake.Name, ts.Format(time.DateTime), err)
	}

	catch := domain.EnrichCatch(actor.AnglerID, sub, ts, species, obs, c.clock.Now())
	catch, err = c.store.InsertCatch(ctx, catch)
	if err != nil {
		return domain.Catch{}, err
	}
	catch.SpeciesName = species.Name
	catch.LakeName = lake.Name

	c.metrics.CatchesRecorded.Inc()
	c.logger.Info("catch recorded",
		"catch_id", catch.ID, "angler_id", catch.AnglerID, "species", species.Name,
		"lake", lake.Name, "master_angler", catch.MasterAngler)

	c.publish(ctx, domain.NewCatchRecorded(catch))
	return catch, nil
}

func (c *Catches) checkLure(ctx context.Context, actor domain.Principal, lureID *int64) error {
	if lureID == nil {
		return nil
	}
	lure, err := c.store.LureByID(ctx, *lureID)
	if err != nil {
		return err
	}
	if lure.AnglerID != actor.AnglerID {
		return fmt.Errorf("%w: lure %d is not in your tackle box", domain.ErrForbidden, lure.ID)
	}
	return nil
}

// Get returns one catch if the actor owns it or is an admin.
func (c *Catches) Get(ctx context.Context, actor domain.Principal, id int64) (domain.Catch, error) {
	catch, err := c.store.CatchByID(ctx, id)
	if err != nil {
		return domain.Catch{}, err
	}
	if err := requireAccess(actor, catch.AnglerID); err != nil {
		return domain.Catch{}, err
	}
	return catch, nil
}

// List returns an angler's catches, newest first.
func (c *Catches) List(ctx context.Context, actor domain.Principal, anglerID int64) ([]domain.Catch, error) {
	if err := requireAccess(actor, anglerID); err != nil {
		return nil, err
	}
	return c.store.CatchesByAngler(ctx, anglerID, 0)
}

// Update edits species, lake, length, weight and image. Weather fields and
// the master-angler flag are not recomputed.
func (c *Catches) Update(ctx context.Context, actor domain.Principal, id int64, upd domain.CatchUpdate) (domain.Catch, error) {
	if err := check(upd); err != nil {
		return domain.Catch{}, err
	}
	catch, err := c.Get(ctx, actor, id)
	if err != nil {
		return domain.Catch{}, err
	}
	if _, err := c.store.SpeciesByID(ctx, upd.SpeciesID); err != nil {
		return domain.Catch{}, err
	}
	if _, err := c.store.LakeByID(ctx, upd.LakeID); err != nil {
		return domain.Catch{}, err
	}

	if err := c.store.UpdateCatch(ctx, catch.ApplyUpdate(upd)); err != nil {
		return domain.Catch{}, err
	}
	return c.store.CatchByID(ctx, id)
}

// Delete removes a catch and decrements its angler's catch count.
func (c *Catches) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	catch, err := c.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := c.store.DeleteCatch(ctx, catch); err != nil {
		return err
	}
	c.logger.Info("catch deleted", "catch_id", id, "angler_id", catch.AnglerID, "by", actor.AnglerID)
	c.publish(ctx, domain.NewCatchDeleted(catch, c.clock.Now()))
	return nil
}

// AttachPhoto uploads a photo for a catch and points the catch at it.
func (c *Catches) AttachPhoto(ctx context.Context, actor domain.Principal, id int64, photo io.Reader) (domain.Catch, error) {
	if c.photos == nil {
		return domain.Catch{}, fmt.Errorf("%w: photo storage", domain.ErrUnavailable)
	}
	catch, err := c.Get(ctx, actor, id)
	if err != nil {
		return domain.Catch{}, err
	}

	url, err := c.photos.Upload(ctx, catch.AnglerID, catch.ID, photo)
	if err != nil {
		return domain.Catch{}, err
	}
	if err := c.store.SetCatchImage(ctx, catch.ID, url); err != nil {
		return domain.Catch{}, err
	}
	c.metrics.PhotosUploaded.Inc()
	catch.ImageURL = url
	return catch, nil
}

// publish sends events after the write has committed. Failures are logged
// and never undo the write.
func (c *Catches) publish(ctx context.Context, events ...domain.CatchEvent) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(context.WithoutCancel(ctx), events...); err != nil {
		c.logger.Error("catch event publish failed", "error", err, "count", len(events))
	}
}

// IsRetryable reports whether err came from a third-party service and the
// request may succeed if repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrExternalService)
}
