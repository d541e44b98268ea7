// Package deck manages the single deck each player builds from their album.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	repocard "github.com/leotinoco7/supertrunfo/pkg/repository/card"
	repodeck "github.com/leotinoco7/supertrunfo/pkg/repository/deck"
)

const MsgDeckDeleted = "Deck successfully deleted!"

type Service struct {
	uow    repository.UnitOfWork
	policy authz.Policy
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	policy authz.Policy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, policy: policy, logger: logger}
}

func notFound(id uuid.UUID) error {
	return domain.NotFound(fmt.Sprintf("this deck (%s)", id))
}

// checkOwned fails with deck.ErrForeignCards unless every album entry in
// ids belongs to ownerID.
func checkOwned(
	ctx context.Context,
	cards repocard.Repository,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) error {
	ids = deck.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	owned, err := cards.ListOwned(ctx, ownerID, ids)
	if err != nil {
		return err
	}
	if len(owned) != len(ids) {
		return deck.ErrForeignCards
	}
	return nil
}

// Create builds the caller's deck. A player holds at most one deck and may
// only put their own album entries in it.
func (s *Service) Create(
	ctx context.Context,
	in *dto.DeckCreate,
	ownerID uuid.UUID,
) (*projection.Deck, error) {
	log := s.logger.With("context", "Create", "ownerID", ownerID)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("deck name cannot be empty")
	}
	var d *deck.Deck
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		decks, err := uow.DeckRepository()
		if err != nil {
			return err
		}
		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		existing, err := decks.GetByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return deck.ErrDeckExists
		}
		if err := checkOwned(ctx, cards, ownerID, in.CardIDs); err != nil {
			return err
		}
		id := uuid.New()
		err = decks.Create(ctx, &dto.DeckCreate{
			ID:      id,
			UserID:  ownerID,
			Name:    name,
			CardIDs: in.CardIDs,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return deck.ErrDeckExists
			}
			return err
		}
		d, err = decks.Get(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		log.Error("Create failed", "error", err)
		return nil, err
	}
	log.Info("Deck created", "deckID", d.ID, "cards", len(d.Cards))
	out := projection.ToDeck(d)
	return &out, nil
}

// FindMine returns the caller's deck.
func (s *Service) FindMine(
	ctx context.Context,
	ownerID uuid.UUID,
) (*projection.Deck, error) {
	var d *deck.Deck
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		decks, err := uow.DeckRepository()
		if err != nil {
			return err
		}
		d, err = decks.GetByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.NotFound("your deck")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := projection.ToDeck(d)
	return &out, nil
}

// loadOwned fetches deck id and checks that the caller owns it. Missing
// decks are reported before ownership.
func (s *Service) loadOwned(
	ctx context.Context,
	decks repodeck.Repository,
	id uuid.UUID,
	ownerID uuid.UUID,
) (*deck.Deck, error) {
	d, err := decks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound(id)
	}
	if err := s.policy.RequireOwner(authz.Principal{ID: ownerID}, d.UserID); err != nil {
		return nil, err
	}
	return d, nil
}

// Update renames the deck and, when CardIDs is set, replaces its cards.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	in *dto.DeckUpdate,
	ownerID uuid.UUID,
) (*projection.Deck, error) {
	log := s.logger.With("context", "Update", "deckID", id, "ownerID", ownerID)
	update := dto.DeckUpdate{CardIDs: in.CardIDs}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("deck name cannot be empty")
		}
		update.Name = &name
	}
	var d *deck.Deck
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		decks, err := uow.DeckRepository()
		if err != nil {
			return err
		}
		if _, err := s.loadOwned(ctx, decks, id, ownerID); err != nil {
			return err
		}
		if update.CardIDs != nil {
			cards, err := uow.CardRepository()
			if err != nil {
				return err
			}
			if err := checkOwned(ctx, cards, ownerID, *update.CardIDs); err != nil {
				return err
			}
		}
		if err := decks.Update(ctx, id, &update); err != nil {
			return err
		}
		d, err = decks.Get(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		log.Error("Update failed", "error", err)
		return nil, err
	}
	log.Info("Deck updated")
	out := projection.ToDeck(d)
	return &out, nil
}

// Delete removes the deck. It fails with domain.ErrNotFound when no such
// deck exists and authz.ErrNotOwner when it belongs to someone else.
func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
	ownerID uuid.UUID,
) (string, error) {
	log := s.logger.With("context", "Delete", "deckID", id, "ownerID", ownerID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		decks, err := uow.DeckRepository()
		if err != nil {
			return err
		}
		if _, err := s.loadOwned(ctx, decks, id, ownerID); err != nil {
			return err
		}
		return decks.Delete(ctx, id)
	})
	if err != nil {
		log.Warn("Delete failed", "error", err)
		return "", err
	}
	log.Info("Deck deleted")
	return MsgDeckDeleted, nil
}

// Reset empties the caller's deck, keeping its name.
func (s *Service) Reset(
	ctx context.Context,
	ownerID uuid.UUID,
) (*projection.Deck, error) {
	var d *deck.Deck
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		decks, err := uow.DeckRepository()
		if err != nil {
			return err
		}
		d, err = decks.GetByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.NotFound("your deck")
		}
		return decks.ClearCards(ctx, d.ID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Deck reset", "deckID", d.ID, "ownerID", ownerID)
	d.Cards = nil
	out := projection.ToDeck(d)
	return &out, nil
}
