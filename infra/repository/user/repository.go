package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/infra/repository"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	repouser "github.com/leotinoco7/supertrunfo/pkg/repository/user"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// New returns the gorm-backed user repository bound to db, which may be a
// transaction session.
func New(db *gorm.DB) repouser.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	m := &repository.User{
		ID:       create.ID,
		Name:     create.Name,
		Email:    create.Email,
		CPF:      create.CPF,
		Password: create.Password,
		ImageURL: create.ImageURL,
		Ranking:  create.Ranking,
		Balance:  create.Balance,
		IsAdmin:  create.IsAdmin,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Omit("Deck", "Album").Create(m).Error
	})
}

func (r *userRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	uu *dto.UserUpdate,
) error {
	updates := make(map[string]any)

	// Only include non-nil fields in the update
	if uu.Name != nil {
		updates["name"] = *uu.Name
	}
	if uu.Email != nil {
		updates["email"] = *uu.Email
	}
	if uu.CPF != nil {
		updates["cpf"] = *uu.CPF
	}
	if uu.Password != nil {
		updates["password"] = *uu.Password
	}
	if uu.ImageURL != nil {
		updates["image_url"] = *uu.ImageURL
	}
	if uu.Ranking != nil {
		updates["ranking"] = *uu.Ranking
	}
	if uu.Balance != nil {
		updates["balance"] = *uu.Balance
	}
	if uu.IsAdmin != nil {
		updates["is_admin"] = *uu.IsAdmin
	}

	if len(updates) == 0 {
		return nil
	}

	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.User{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *userRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*user.User, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*user.User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", email)
}

func (r *userRepository) GetWithDeck(
	ctx context.Context,
	id uuid.UUID,
) (*user.User, error) {
	u, err := r.first(
		r.db.WithContext(ctx).Preload("Deck.Cards.Card.Collection"),
		"id = ?", id,
	)
	if err != nil || u == nil {
		return u, err
	}
	err = repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.UserToCard{}).
			Where("user_id = ?", id).
			Count(&u.OwnedCards).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetWithAlbum(
	ctx context.Context,
	id uuid.UUID,
) (*user.User, error) {
	return r.first(
		r.db.WithContext(ctx).Preload("Album", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).Preload("Album.Card.Collection"),
		"id = ?", id,
	)
}

func (r *userRepository) first(
	db *gorm.DB,
	query string,
	args ...any,
) (*user.User, error) {
	var m repository.User
	if err := db.Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return repository.MapUserModelToDomain(&m), nil
}

func (r *userRepository) List(
	ctx context.Context,
) ([]*user.User, error) {
	var users []repository.User
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Order("created_at").Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	result := make([]*user.User, 0, len(users))
	for i := range users {
		result = append(result, repository.MapUserModelToDomain(&users[i]))
	}
	return result, nil
}

func (r *userRepository) ExistsByEmailOrCPF(
	ctx context.Context,
	email, cpf string,
) (bool, error) {
	var count int64
	err := repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&repository.User{}).
			Where("email = ? OR cpf = ?", email, cpf).
			Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Debit(
	ctx context.Context,
	id uuid.UUID,
	amount decimal.Decimal,
) error {
	var res *gorm.DB
	err := repository.WrapError(func() error {
		res = r.db.WithContext(ctx).Model(&repository.User{}).
			Where("id = ? AND balance >= ?", id, amount).
			Updates(map[string]any{"balance": gorm.Expr("balance - ?", amount)})
		return res.Error
	})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *userRepository) Credit(
	ctx context.Context,
	id uuid.UUID,
	amount decimal.Decimal,
) error {
	var res *gorm.DB
	err := repository.WrapError(func() error {
		res = r.db.WithContext(ctx).Model(&repository.User{}).
			Where("id = ?", id).
			Updates(map[string]any{"balance": gorm.Expr("balance + ?", amount)})
		return res.Error
	})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&repository.User{}, "id = ?", id).Error
	})
}
