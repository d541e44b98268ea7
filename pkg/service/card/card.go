// Package card manages the card catalog.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	repocollection "github.com/leotinoco7/supertrunfo/pkg/repository/collection"
	collectionsvc "github.com/leotinoco7/supertrunfo/pkg/service/collection"
)

const MsgCardDeleted = "Card successfully deleted!"

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
	return domain.NotFound(fmt.Sprintf("this card (%s)", id))
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

func validateStats(attack, defense int) error {
	if attack < 0 || defense < 0 {
		return domain.Invalid("attack and defense cannot be negative")
	}
	return nil
}

func (s *Service) Create(
	ctx context.Context,
	in *dto.CardCreate,
	caller authz.Principal,
) (*projection.Card, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	create := *in
	create.Name = strings.TrimSpace(in.Name)
	if create.Name == "" {
		return nil, domain.Invalid("card name cannot be empty")
	}
	if err := validateStats(create.Attack, create.Defense); err != nil {
		return nil, err
	}
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	var c *card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		collections, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		if err := requireCollection(ctx, collections, create.CollectionID); err != nil {
			return err
		}
		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		if err := cards.Create(ctx, &create); err != nil {
			return err
		}
		c, err = cards.Get(ctx, create.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return notFound(create.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create card failed", "name", create.Name, "error", err)
		return nil, err
	}
	s.logger.Info("Card created", "cardID", c.ID, "collectionID", c.CollectionID)
	return projection.ToCard(c), nil
}

// FindAll lists the catalog, optionally restricted to one collection.
func (s *Service) FindAll(
	ctx context.Context,
	collectionID *uuid.UUID,
) ([]projection.Card, error) {
	var cs []*card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		cs, err = repo.List(ctx, collectionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projection.ToCards(cs), nil
}

func (s *Service) FindOne(
	ctx context.Context,
	id uuid.UUID,
) (*projection.Card, error) {
	var c *card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projection.ToCard(c), nil
}

func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	in *dto.CardUpdate,
	caller authz.Principal,
) (*projection.Card, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	update := *in
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("card name cannot be empty")
		}
		update.Name = &name
	}
	if (in.Attack != nil && *in.Attack < 0) || (in.Defense != nil && *in.Defense < 0) {
		return nil, domain.Invalid("attack and defense cannot be negative")
	}
	var c *card.Card
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		existing, err := cards.Get(ctx, id)
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
		if err := cards.Update(ctx, id, &update); err != nil {
			return err
		}
		c, err = cards.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound(id)
	}
	s.logger.Info("Card updated", "cardID", id)
	return projection.ToCard(c), nil
}

// Delete removes a card from the catalog and from every album holding it.
func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Principal,
) (string, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return "", err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return notFound(id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Card deleted", "cardID", id, "callerID", caller.ID)
	return MsgCardDeleted, nil
}
