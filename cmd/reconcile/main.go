// Command reconcile checks stored catch data for consistency: every
// angler's denormalized catch count must equal their catch rows, and every
// catch must carry a valid wind bucket, pressure and timestamp. With -fix,
// drifted catch counts are recomputed.
//
// Usage:
//
//	go run ./cmd/reconcile -dsn reel_report.db [-fix]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/sqlstore"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/service"
)

// phase tracks pass/fail for a check.
type phase struct {
	name   string
	notes  []string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// catchSource is what the field checks read.
type catchSource interface {
	ListAnglers(ctx context.Context) ([]domain.Angler, error)
	CatchesByAngler(ctx context.Context, anglerID int64, limit int) ([]domain.Catch, error)
}

func main() {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	driver := flag.String("driver", sharedcfg.EnvOrDefault("DB_DRIVER", "sqlite"), "database driver: sqlite or mysql")
	dsn := flag.String("dsn", sharedcfg.EnvOrDefault("DB_DSN", "reel_report.db"), "database DSN")
	tz := flag.String("tz", sharedcfg.EnvOrDefault("CATCH_TIMEZONE", "Local"), "zone catch dates and times were recorded in")
	fix := flag.Bool("fix", false, "recompute drifted catch counts")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: timezone %q: %v\n", *tz, err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlstore.Open(ctx, strings.ToLower(*driver), *dsn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	reports := service.NewReports(store, logger)
	os.Exit(run(ctx, os.Stdout, reports, store, loc, *fix))
}

// loadDotEnv loads .env (or the given files) into the environment. A missing
// file is fine; a malformed one is not.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func run(ctx context.Context, out io.Writer, reports *service.Reports, catches catchSource, loc *time.Location, fix bool) int {
	fmt.Fprintln(out, "=== Reel Report Data Reconciliation ===")
	fmt.Fprintln(out)

	phases := []*phase{
		checkCatchCounts(ctx, reports, fix),
		checkCatchFields(ctx, catches, loc),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if len(p.notes) == 0 && p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Fprintf(out, "  %s\n", n)
		}
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Fprintf(out, "  ... and %d more\n", len(p.errors)-20)
				break
			}
			fmt.Fprintf(out, "  %s\n", e)
		}
	}

	fmt.Fprintln(out)
	if !allPassed {
		fmt.Fprintln(out, "Reconciliation FAILED")
		return 1
	}
	fmt.Fprintln(out, "Reconciliation passed")
	return 0
}

func checkCatchCounts(ctx context.Context, reports *service.Reports, fix bool) *phase {
	p := &phase{name: "Catch counts match catch rows"}

	drift, err := reports.Reconcile(ctx, fix)
	if err != nil {
		p.errorf("reconcile: %v", err)
		return p
	}
	for _, d := range drift {
		if fix {
			p.notef("fixed %s (id %d): stored %d, actual %d", d.Username, d.AnglerID, d.Stored, d.Actual)
			continue
		}
		p.errorf("%s (id %d): stored %d, actual %d", d.Username, d.AnglerID, d.Stored, d.Actual)
	}
	if !fix {
		return p
	}

	remaining, err := reports.Reconcile(ctx, false)
	if err != nil {
		p.errorf("recheck: %v", err)
		return p
	}
	for _, d := range remaining {
		p.errorf("still drifted after fix: %s (id %d): stored %d, actual %d", d.Username, d.AnglerID, d.Stored, d.Actual)
	}
	return p
}

func checkCatchFields(ctx context.Context, src catchSource, loc *time.Location) *phase {
	p := &phase{name: "Catch weather fields are valid"}

	anglers, err := src.ListAnglers(ctx)
	if err != nil {
		p.errorf("list anglers: %v", err)
		return p
	}
	total := 0
	for _, a := range anglers {
		catches, err := src.CatchesByAngler(ctx, a.ID, 0)
		if err != nil {
			p.errorf("catches for angler %d: %v", a.ID, err)
			continue
		}
		for i := range catches {
			checkCatch(p, &catches[i], loc)
		}
		total += len(catches)
	}
	p.notef("%d catches checked across %d anglers", total, len(anglers))
	return p
}

func checkCatch(p *phase, c *domain.Catch, loc *time.Location) {
	switch c.WindDirection {
	case domain.WindNorth, domain.WindEast, domain.WindSouth, domain.WindWest:
	default:
		p.errorf("catch %d: wind direction %q is not N, E, S or W", c.ID, c.WindDirection)
	}
	if c.Pressure <= 0 {
		p.errorf("catch %d: barometric pressure %.2f is not positive", c.ID, c.Pressure)
	}
	ts, err := domain.NormalizeTimestamp(c.Date, c.Time, loc)
	if err != nil {
		p.errorf("catch %d: %v", c.ID, err)
		return
	}
	if ts.Unix() != c.Timestamp {
		p.errorf("catch %d: timestamp %d does not match %s %s (%d)", c.ID, c.Timestamp, c.Date, c.Time, ts.Unix())
	}
	if c.Length != nil && (*c.Length < 0 || *c.Length > 60) {
		p.errorf("catch %d: length %.2f out of range", c.ID, *c.Length)
	}
}
