package service

import (
	"context"
	"strings"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// SpeciesStore persists species.
type SpeciesStore interface {
	ListSpecies(ctx context.Context) ([]domain.Species, error)
	SpeciesByID(ctx context.Context, id int64) (domain.Species, error)
	CreateSpecies(ctx context.Context, sp domain.Species) (domain.Species, error)
	UpdateSpecies(ctx context.Context, sp domain.Species) error
	DeleteSpecies(ctx context.Context, id int64) error
}

// SpeciesInput is the editable part of a species.
type SpeciesInput struct {
	Name               string  `json:"name" validate:"required,max=50"`
	MasterAnglerLength float64 `json:"master_angler_length" validate:"gt=0,lte=100"`
}

// SpeciesCatalog manages fish species. Changes are admin only.
type SpeciesCatalog struct {
	store SpeciesStore
}

func NewSpeciesCatalog(store SpeciesStore) *SpeciesCatalog {
	return &SpeciesCatalog{store: store}
}

func (s *SpeciesCatalog) List(ctx context.Context) ([]domain.Species, error) {
	return s.store.ListSpecies(ctx)
}

func (s *SpeciesCatalog) Get(ctx context.Context, id int64) (domain.Species, error) {
	return s.store.SpeciesByID(ctx, id)
}

func (s *SpeciesCatalog) Create(ctx context.Context, actor domain.Principal, in SpeciesInput) (domain.Species, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Species{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.Species{}, err
	}
	return s.store.CreateSpecies(ctx, domain.Species{Name: in.Name, MasterAnglerLength: in.MasterAnglerLength})
}

// Update changes a species. Catches already flagged as master angler keep
// their flag even if the threshold moves.
func (s *SpeciesCatalog) Update(ctx context.Context, actor domain.Principal, id int64, in SpeciesInput) (domain.Species, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Species{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return domain.Species{}, err
	}
	sp, err := s.store.SpeciesByID(ctx, id)
	if err != nil {
		return domain.Species{}, err
	}
	sp.Name = in.Name
	sp.MasterAnglerLength = in.MasterAnglerLength
	if err := s.store.UpdateSpecies(ctx, sp); err != nil {
		return domain.Species{}, err
	}
	return sp, nil
}

func (s *SpeciesCatalog) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.store.DeleteSpecies(ctx, id)
}
