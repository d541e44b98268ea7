package repository

import (
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
)

// MapUserModelToDomain converts a User model, and whatever relations were
// preloaded on it, into the domain user.
func MapUserModelToDomain(m *User) *user.User {
	if m == nil {
		return nil
	}
	u := &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CPF:       m.CPF,
		Password:  m.Password,
		ImageURL:  m.ImageURL,
		Ranking:   m.Ranking,
		Balance:   m.Balance,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Deck:      MapDeckModelToDomain(m.Deck),
	}
	if m.Album != nil {
		u.Album = MapUserToCardModelsToDomain(m.Album)
	}
	return u
}

func MapCollectionModelToDomain(m *Collection) *card.Collection {
	if m == nil {
		return nil
	}
	return &card.Collection{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MapCardModelToDomain(m *Card) *card.Card {
	if m == nil {
		return nil
	}
	return &card.Card{
		ID:           m.ID,
		Name:         m.Name,
		Rarity:       m.Rarity,
		Type:         m.Type,
		Attack:       m.Attack,
		Defense:      m.Defense,
		ImageURL:     m.ImageURL,
		CollectionID: m.CollectionID,
		Collection:   MapCollectionModelToDomain(m.Collection),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func MapUserToCardModelsToDomain(ms []UserToCard) []card.Ownership {
	out := make([]card.Ownership, 0, len(ms))
	for i := range ms {
		out = append(out, card.Ownership{
			ID:        ms[i].ID,
			UserID:    ms[i].UserID,
			CardID:    ms[i].CardID,
			Card:      MapCardModelToDomain(ms[i].Card),
			CreatedAt: ms[i].CreatedAt,
		})
	}
	return out
}

func MapDeckModelToDomain(m *Deck) *deck.Deck {
	if m == nil {
		return nil
	}
	return &deck.Deck{
		ID:        m.ID,
		Name:      m.Name,
		UserID:    m.UserID,
		Cards:     MapUserToCardModelsToDomain(m.Cards),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MapPackModelToDomain(m *Pack) *pack.Pack {
	if m == nil {
		return nil
	}
	return &pack.Pack{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		CardCount:    m.CardCount,
		CollectionID: m.CollectionID,
		Collection:   MapCollectionModelToDomain(m.Collection),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
