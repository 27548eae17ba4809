// Command seed loads the species catalog from CSV and, optionally, demo
// anglers, lakes and lures. Rows that already exist are skipped, so seeding
// an existing database is safe.
//
// Usage:
//
//	go run ./cmd/seed -species data/fish-species.csv -demo
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/sqlstore"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/auth"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

var demoLakes = []domain.Lake{
	{Name: "Horseshoe Lake", State: "MN", ClosestTown: "Waterville", Lat: 44.2189914, Lon: -93.56797},
	{Name: "Leech Lake", State: "MN", ClosestTown: "Walker", Lat: 47.101709, Lon: -94.585026},
	{Name: "Red Lake", State: "MN", ClosestTown: "Waskish", Lat: 48.161352, Lon: -94.512455},
	{Name: "Lake Minnetonka", State: "MN", ClosestTown: "Minnetonka", Lat: 44.9405086, Lon: -93.4638936},
}

var demoLures = []domain.Lure{
	{Brand: "Rapala", Name: "Shad Rap", Color: "Fire Tiger", Size: "No. 5"},
	{Brand: "Keitech", Name: "Easy Shiner", Color: "Bluegill Flash", Size: "3 in."},
	{Brand: "VMC", Name: "Moon Eye Jig", Color: "Glow Pink", Size: "1/8 oz."},
	{Brand: "Cotton Cordell", Name: "Baby-O", Color: "Pearl"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	driver := flag.String("driver", sharedcfg.EnvOrDefault("DB_DRIVER", "sqlite"), "database driver: sqlite or mysql")
	dsn := flag.String("dsn", sharedcfg.EnvOrDefault("DB_DSN", "reel_report.db"), "database DSN")
	speciesPath := flag.String("species", "data/fish-species.csv", "species CSV with name,master_angler_length columns")
	demo := flag.Bool("demo", false, "also create demo anglers, lakes and lures")
	password := flag.String("demo-password", "mmmmmm", "password for the demo anglers")
	flag.Parse()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := sqlstore.Open(ctx, strings.ToLower(*driver), *dsn, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	species, err := readSpecies(*speciesPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", *speciesPath, err)
	}
	added := 0
	for _, sp := range species {
		ok, err := skipExisting(store.CreateSpecies(ctx, sp))
		if err != nil {
			return fmt.Errorf("species %q: %w", sp.Name, err)
		}
		if ok {
			added++
		}
	}
	log.Printf("species: %d added, %d already present", added, len(species)-added)

	if !*demo {
		return nil
	}
	return seedDemo(ctx, store, *password)
}

func seedDemo(ctx context.Context, store *sqlstore.Store, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := ensureAngler(ctx, store, domain.Angler{Username: "admin", Email: "test@test.com", PasswordHash: hash, Admin: true})
	if err != nil {
		return err
	}
	if _, err := ensureAngler(ctx, store, domain.Angler{Username: "non_admin", Email: "test2@test.com", PasswordHash: hash}); err != nil {
		return err
	}

	existing, err := store.ListLakes(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, l := range existing {
		have[l.Name+"|"+l.State] = true
	}
	for _, l := range demoLakes {
		if have[l.Name+"|"+l.State] {
			continue
		}
		if _, err := store.CreateLake(ctx, l); err != nil {
			return fmt.Errorf("lake %q: %w", l.Name, err)
		}
	}

	box, err := store.LuresByAngler(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(box) == 0 {
		for _, l := range demoLures {
			l.AnglerID = admin.ID
			if _, err := store.CreateLure(ctx, l); err != nil {
				return fmt.Errorf("lure %q: %w", l.Name, err)
			}
		}
	}

	log.Printf("demo data ready: anglers admin and non_admin, %d lakes, %d lures", len(demoLakes), len(demoLures))
	return nil
}

func ensureAngler(ctx context.Context, store *sqlstore.Store, a domain.Angler) (domain.Angler, error) {
	existing, err := store.AnglerByUsername(ctx, a.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Angler{}, err
	}
	return store.CreateAngler(ctx, a)
}

// skipExisting treats a unique violation as an already seeded row.
func skipExisting[T any](_ T, err error) (bool, error) {
	var uv *domain.UniqueViolation
	if errors.As(err, &uv) {
		return false, nil
	}
	return err == nil, err
}

func readSpecies(path string) ([]domain.Species, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSpecies(f)
}

func parseSpecies(r io.Reader) ([]domain.Species, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	nameCol, ok := colIdx["name"]
	if !ok {
		return nil, fmt.Errorf("missing name column")
	}
	lenCol, ok := colIdx["master_angler_length"]
	if !ok {
		return nil, fmt.Errorf("missing master_angler_length column")
	}

	out := make([]domain.Species, 0, len(rows)-1)
	for i, row := range rows[1:] {
		name := strings.TrimSpace(row[nameCol])
		length, err := strconv.ParseFloat(strings.TrimSpace(row[lenCol]), 64)
		if name == "" || err != nil || length <= 0 {
			return nil, fmt.Errorf("line %d: invalid species row %q", i+2, row)
		}
		out = append(out, domain.Species{Name: name, MasterAnglerLength: length})
	}
	return out, nil
}
