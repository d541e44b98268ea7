package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
)

type CollectionService interface {
	FindAll(ctx context.Context) ([]projection.Collection, error)
	Create(ctx context.Context, in *dto.CollectionCreate, caller authz.Principal) (*projection.Collection, error)
}

type CardService interface {
	Create(ctx context.Context, in *dto.CardCreate, caller authz.Principal) (*projection.Card, error)
}

type PackService interface {
	Create(ctx context.Context, in *dto.PackCreate, caller authz.Principal) (*projection.Pack, error)
}

// Report counts what Seed created and skipped.
type Report struct {
	Collections int
	Cards       int
	Packs       int
	Skipped     []string
}

// Seeder writes collection seeds through the catalog services.
type Seeder struct {
	Collections CollectionService
	Cards       CardService
	Packs       PackService
	Logger      *slog.Logger
}

// Seed creates every seeded collection with its cards and packs. A
// collection whose name already exists is skipped whole, so running Seed
// twice creates nothing the second time.
func (s *Seeder) Seed(
	ctx context.Context,
	seeds []CollectionSeed,
	caller authz.Principal,
) (Report, error) {
	var report Report
	existing, err := s.Collections.FindAll(ctx)
	if err != nil {
		return report, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}

	for _, seed := range seeds {
		log := s.Logger.With("collection", seed.Name)
		if known[seed.Name] {
			log.Info("Collection exists, skipping")
			report.Skipped = append(report.Skipped, seed.Name)
			continue
		}
		col, err := s.Collections.Create(ctx, &dto.CollectionCreate{Name: seed.Name}, caller)
		if err != nil {
			return report, fmt.Errorf("collection %q: %w", seed.Name, err)
		}
		report.Collections++

		for _, c := range seed.Cards {
			if _, err := s.Cards.Create(ctx, &dto.CardCreate{
				Name:         c.Name,
				Rarity:       c.Rarity,
				Type:         c.Type,
				Attack:       c.Attack,
				Defense:      c.Defense,
				ImageURL:     c.ImageURL,
				CollectionID: col.ID,
			}, caller); err != nil {
				return report, fmt.Errorf("card %q: %w", c.Name, err)
			}
			report.Cards++
		}
		for _, p := range seed.Packs {
			if _, err := s.Packs.Create(ctx, &dto.PackCreate{
				Name:         p.Name,
				Price:        p.Price,
				CardCount:    p.CardCount,
				CollectionID: col.ID,
			}, caller); err != nil {
				return report, fmt.Errorf("pack %q: %w", p.Name, err)
			}
			report.Packs++
		}
		log.Info("Collection seeded", "cards", len(seed.Cards), "packs", len(seed.Packs))
	}
	return report, nil
}
