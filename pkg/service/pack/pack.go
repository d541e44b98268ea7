// Package pack sells booster packs: admins manage the catalog of packs and
// players open them, paying the price from their balance in exchange for
// random cards from the pack's collection.
package pack

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	repocollection "github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	collectionsvc "github.com/leotinoco7/supertrunfo/pkg/service/collection"
	"github.com/shopspring/decimal"
)

const MsgPackDeleted = "Pack successfully deleted!"

// MaxCardCount bounds how many cards a single pack may hold.
const MaxCardCount = 100

type Service struct {
	uow    repository.UnitOfWork
	policy authz.Policy
	logger *slog.Logger
	intn   func(n int) int
}

func New(
	uow repository.UnitOfWork,
	policy authz.Policy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, policy: policy, logger: logger, intn: rand.IntN}
}

func notFound(id uuid.UUID) error {
	return domain.NotFound(fmt.Sprintf("this pack (%s)", id))
}

func validate(price *decimal.Decimal, cardCount *int) error {
	if price != nil && price.IsNegative() {
		return domain.Invalid("price cannot be negative")
	}
	if cardCount != nil && (*cardCount < 1 || *cardCount > MaxCardCount) {
		return domain.Invalid(fmt.Sprintf("card count must be between 1 and %d", MaxCardCount))
	}
	return nil
}

func requireCollection(
	ctx context.Context,
	repo repocollection.Repository,
	id uuid.UUID,
) error {
	c, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return collectionsvc.NotFound(id)
	}
	return nil
}

func (s *Service) Create(
	ctx context.Context,
	in *dto.PackCreate,
	caller authz.Principal,
) (*projection.Pack, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	create := *in
	create.Name = strings.TrimSpace(in.Name)
	if create.Name == "" {
		return nil, domain.Invalid("pack name cannot be empty")
	}
	if err := validate(&create.Price, &create.CardCount); err != nil {
		return nil, err
	}
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	var p *pack.Pack
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		collections, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		if err := requireCollection(ctx, collections, create.CollectionID); err != nil {
			return err
		}
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		if err := packs.Create(ctx, &create); err != nil {
			return err
		}
		p, err = packs.Get(ctx, create.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(create.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create pack failed", "name", create.Name, "error", err)
		return nil, err
	}
	s.logger.Info("Pack created", "packID", p.ID, "price", p.Price, "cardCount", p.CardCount)
	out := projection.ToPack(p)
	return &out, nil
}

func (s *Service) FindAll(ctx context.Context) ([]projection.Pack, error) {
	var ps []*pack.Pack
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PackRepository()
		if err != nil {
			return err
		}
		ps, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projection.ToPacks(ps), nil
}

func (s *Service) FindOne(
	ctx context.Context,
	id uuid.UUID,
) (*projection.Pack, error) {
	var p *pack.Pack
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PackRepository()
		if err != nil {
			return err
		}
		p, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := projection.ToPack(p)
	return &out, nil
}

func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	in *dto.PackUpdate,
	caller authz.Principal,
) (*projection.Pack, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	update := *in
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("pack name cannot be empty")
		}
		update.Name = &name
	}
	if err := validate(update.Price, update.CardCount); err != nil {
		return nil, err
	}
	var p *pack.Pack
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		existing, err := packs.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound(id)
		}
		if update.CollectionID != nil {
			collections, err := uow.CollectionRepository()
			if err != nil {
				return err
			}
			if err := requireCollection(ctx, collections, *update.CollectionID); err != nil {
				return err
			}
		}
		if err := packs.Update(ctx, id, &update); err != nil {
			return err
		}
		p, err = packs.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(id)
	}
	s.logger.Info("Pack updated", "packID", id)
	out := projection.ToPack(p)
	return &out, nil
}

func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Principal,
) (string, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return "", err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PackRepository()
		if err != nil {
			return err
		}
		p, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Pack deleted", "packID", id, "callerID", caller.ID)
	return MsgPackDeleted, nil
}

// Open buys one pack for callerID. In a single transaction the price is
// debited, CardCount cards are drawn with replacement from the pack's
// collection and added to the caller's album. Nothing changes when the
// balance is short (domain.ErrInsufficientFunds).
func (s *Service) Open(
	ctx context.Context,
	id uuid.UUID,
	callerID uuid.UUID,
) ([]projection.OwnedCard, error) {
	log := s.logger.With("context", "Open", "packID", id, "userID", callerID)
	var opened []card.Ownership
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		p, err := packs.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound(id)
		}

		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		pool, err := cards.List(ctx, &p.CollectionID)
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return pack.ErrEmptyCollection
		}

		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := users.Debit(ctx, callerID, p.Price); err != nil {
			return err
		}

		drawn := make([]uuid.UUID, p.CardCount)
		byID := make(map[uuid.UUID]*card.Card, len(pool))
		for i := range drawn {
			c := pool[s.intn(len(pool))]
			drawn[i] = c.ID
			byID[c.ID] = c
		}
		opened, err = cards.AddToAlbum(ctx, callerID, drawn)
		if err != nil {
			return err
		}
		for i := range opened {
			if opened[i].Card == nil {
				opened[i].Card = byID[opened[i].CardID]
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("Open failed", "error", err)
		return nil, err
	}
	log.Info("Pack opened", "cards", len(opened))
	return projection.ToOwnedCards(opened), nil
}
