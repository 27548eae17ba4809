package service

import (
	"context"
	"strings"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// LureStore persists tackle boxes.
type LureStore interface {
	CreateLure(ctx context.Context, l domain.Lure) (domain.Lure, error)
	LuresByAngler(ctx context.Context, anglerID int64) ([]domain.Lure, error)
}

// LureInput describes a lure to add.
type LureInput struct {
	Brand string `json:"brand" validate:"required,max=50"`
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"max=30"`
	Size  string `json:"size" validate:"max=20"`
}

// Lures manages anglers' tackle boxes.
type Lures struct {
	store LureStore
}

func NewLures(store LureStore) *Lures {
	return &Lures{store: store}
}

// Add puts a lure in the actor's own tackle box.
func (l *Lures) Add(ctx context.Context, actor domain.Principal, in LureInput) (domain.Lure, error) {
	if err := requireAngler(actor); err != nil {
		return domain.Lure{}, err
	}
	in.Brand = strings.TrimSpace(in.Brand)
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.Size = strings.TrimSpace(in.Size)
	if err := check(in); err != nil {
		return domain.Lure{}, err
	}
	return l.store.CreateLure(ctx, domain.Lure{
		Brand:    in.Brand,
		Name:     in.Name,
		Color:    in.Color,
		Size:     in.Size,
		AnglerID: actor.AnglerID,
	})
}

// TackleBox lists an angler's lures ordered by brand.
func (l *Lures) TackleBox(ctx context.Context, actor domain.Principal, anglerID int64) ([]domain.Lure, error) {
	if err := requireAccess(actor, anglerID); err != nil {
		return nil, err
	}
	return l.store.LuresByAngler(ctx, anglerID)
}
