// Package user provides business logic for player accounts: registration,
// the admin views and the caller's own account.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/pkg/projection"
	"github.com/leotinoco7/supertrunfo/pkg/repository"
	"github.com/leotinoco7/supertrunfo/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	MsgUserDeleted    = "User successfully deleted!"
	MsgAccountDeleted = "Your account was successfully deleted!"
)

// Service provides business logic for user operations.
type Service struct {
	uow        repository.UnitOfWork
	policy     authz.Policy
	bcryptCost int
	logger     *slog.Logger
}

// New creates a new Service. bcryptCost is the cost used for every new
// password hash.
func New(
	uow repository.UnitOfWork,
	policy authz.Policy,
	bcryptCost int,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:        uow,
		policy:     policy,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RequireAdmin lets handlers reject non-admins before parsing any input.
func (s *Service) RequireAdmin(caller authz.Principal) error {
	return s.policy.RequireAdmin(caller)
}

func notFound(id uuid.UUID) error {
	return domain.NotFound(fmt.Sprintf("this user (%s)", id))
}

// Create registers a user. The e-mail and CPF must both be unused.
func (s *Service) Create(
	ctx context.Context,
	in *dto.UserCreate,
) (*projection.PublicProfile, error) {
	log := s.logger.With("context", "Create", "email", in.Email)
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByEmailOrCPF(ctx, user.NormalizeEmail(in.Email), user.NormalizeCPF(in.CPF))
		if err != nil {
			return err
		}
		if exists {
			return user.ErrIdentityInUse
		}
		u, err = user.New(in.Name, in.Email, in.CPF, in.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		u.ImageURL = in.ImageURL
		u.IsAdmin = in.IsAdmin
		err = repo.Create(ctx, &dto.UserCreate{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			CPF:      u.CPF,
			Password: u.Password,
			ImageURL: u.ImageURL,
			Balance:  u.Balance,
			IsAdmin:  u.IsAdmin,
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			return user.ErrIdentityInUse
		}
		return err
	})
	if err != nil {
		log.Error("Create failed", "error", err)
		return nil, err
	}
	log.Info("User created", "userID", u.ID)
	out := projection.ToPublicProfile(u)
	return &out, nil
}

// FindAll lists every user for an administrator.
func (s *Service) FindAll(
	ctx context.Context,
	caller authz.Principal,
) ([]projection.AdminListing, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	var users []*user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projection.ToAdminListing(users), nil
}

// FindOne returns any user's profile to an administrator.
func (s *Service) FindOne(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Principal,
) (*projection.Profile, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := projection.ToProfile(u)
	return &out, nil
}

// Remove deletes any user on behalf of an administrator.
func (s *Service) Remove(
	ctx context.Context,
	id uuid.UUID,
	caller authz.Principal,
) (string, error) {
	log := s.logger.With("context", "Remove", "userID", id)
	if err := s.policy.RequireAdmin(caller); err != nil {
		log.Warn("Remove denied", "callerID", caller.ID)
		return "", err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound(id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		log.Error("Remove failed", "error", err)
		return "", err
	}
	log.Info("User removed", "callerID", caller.ID)
	return MsgUserDeleted, nil
}

// FindMyAcc returns the caller's account with its deck and owned-card
// count, or nil when the account no longer exists.
func (s *Service) FindMyAcc(
	ctx context.Context,
	callerID uuid.UUID,
) (*projection.AccountWithDeck, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetWithDeck(ctx, callerID)
		return err
	})
	if err != nil || u == nil {
		return nil, err
	}
	out := projection.ToAccountWithDeck(u)
	return &out, nil
}

// FindMyAlbum returns every card the caller owns.
func (s *Service) FindMyAlbum(
	ctx context.Context,
	callerID uuid.UUID,
) (*projection.Album, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetWithAlbum(ctx, callerID)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound(callerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := projection.ToAlbum(u)
	return &out, nil
}

// UpdateMyAcc applies a partial update to the caller's own account. A new
// password is hashed before storage. The admin flag, balance and ranking
// cannot be changed this way.
func (s *Service) UpdateMyAcc(
	ctx context.Context,
	callerID uuid.UUID,
	in *dto.UserUpdate,
) (*projection.Profile, error) {
	log := s.logger.With("context", "UpdateMyAcc", "userID", callerID)
	update := dto.UserUpdate{
		Name:     in.Name,
		ImageURL: in.ImageURL,
	}
	if in.Email != nil {
		email := user.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.Invalid("email cannot be empty")
		}
		update.Email = &email
	}
	if in.CPF != nil {
		cpf := user.NormalizeCPF(*in.CPF)
		update.CPF = &cpf
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Invalid("password cannot be empty")
		}
		hashed, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, domain.Invalid(err.Error())
		}
		update.Password = &hashed
	}

	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, callerID, &update); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return user.ErrIdentityInUse
			}
			return err
		}
		u, err = repo.Get(ctx, callerID)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound(callerID)
		}
		return nil
	})
	if err != nil {
		log.Error("UpdateMyAcc failed", "error", err)
		return nil, err
	}
	log.Info("Account updated")
	out := projection.ToProfile(u)
	return &out, nil
}

// DeleteMyAcc deletes the caller's own account.
func (s *Service) DeleteMyAcc(
	ctx context.Context,
	callerID uuid.UUID,
) (string, error) {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, callerID)
		if err != nil {
			return err
		}
		if u == nil {
			return notFound(callerID)
		}
		return repo.Delete(ctx, callerID)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Account deleted", "userID", callerID)
	return MsgAccountDeleted, nil
}

// Credit adds coins to a user's balance on behalf of an administrator.
func (s *Service) Credit(
	ctx context.Context,
	id uuid.UUID,
	amount decimal.Decimal,
	caller authz.Principal,
) (*projection.Profile, error) {
	if err := s.policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.Invalid("amount must be positive")
	}
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Credit(ctx, id, amount); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return notFound(id)
			}
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound(id)
	}
	s.logger.Info("Balance credited", "userID", id, "amount", amount, "callerID", caller.ID)
	out := projection.ToProfile(u)
	return &out, nil
}

// SetAdmin grants or revokes the admin flag of the user with the given
// e-mail. It is reachable from the command line only.
func (s *Service) SetAdmin(
	ctx context.Context,
	email string,
	isAdmin bool,
) (*projection.Profile, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, user.NormalizeEmail(email))
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFound(fmt.Sprintf("a user with e-mail %s", email))
		}
		if err := repo.Update(ctx, u.ID, &dto.UserUpdate{IsAdmin: &isAdmin}); err != nil {
			return err
		}
		u.IsAdmin = isAdmin
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Admin flag changed", "userID", u.ID, "isAdmin", isAdmin)
	out := projection.ToProfile(u)
	return &out, nil
}

// Identify loads the user behind an authenticated request. It returns nil
// when the user has been deleted since the token was issued.
func (s *Service) Identify(
	ctx context.Context,
	id uuid.UUID,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}
