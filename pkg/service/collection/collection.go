// Package collection manages the named groupings cards belong to.
package collection

import (
	"context"
	"errors"
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
)

const MsgCollectionDeleted = "Collection successfully deleted!"

// ErrNameInUse is returned when another collection already has the name.
var ErrNameInUse = fmt.Errorf("%w: a collection with this name already exists", domain.ErrAlreadyExists)

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

// NotFound reports a missing collection by id.
func NotFound(id uuid.UUID) error {
	return domain.NotFound(fmt.Sprintf("this collection (%s)", id))
}

func (s *Service) Create(
	ctx context.Context,
	in *dto.CollectionCreate,
	caller authz.Principal,
) (*projection.Collection, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("collection name cannot be empty")
	}
	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	var c *card.Collection
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.CollectionCreate{ID: id, Name: name}); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return ErrNameInUse
			}
			return err
		}
		c, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return NotFound(id)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create collection failed", "name", name, "error", err)
		return nil, err
	}
	s.logger.Info("Collection created", "collectionID", id, "name", name)
	return projection.ToCollection(c), nil
}

func (s *Service) FindAll(ctx context.Context) ([]projection.Collection, error) {
	var cs []*card.Collection
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		cs, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projection.ToCollections(cs), nil
}

func (s *Service) FindOne(
	ctx context.Context,
	id uuid.UUID,
) (*projection.Collection, error) {
	var c *card.Collection
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return NotFound(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projection.ToCollection(c), nil
}

func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	in *dto.CollectionUpdate,
	caller authz.Principal,
) (*projection.Collection, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	update := dto.CollectionUpdate{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("collection name cannot be empty")
		}
		update.Name = &name
	}
	var c *card.Collection
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return NotFound(id)
		}
		if err := repo.Update(ctx, id, &update); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return ErrNameInUse
			}
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NotFound(id)
	}
	s.logger.Info("Collection updated", "collectionID", id)
	return projection.ToCollection(c), nil
}

// Delete removes a collection together with its cards and packs.
func (s *Service) Delete(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Principal,
) (string, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return "", err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return NotFound(id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Collection deleted", "collectionID", id, "callerID", caller.ID)
	return MsgCollectionDeleted, nil
}
