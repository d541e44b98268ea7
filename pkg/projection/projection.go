// Package projection shapes loaded domain objects into the exact field sets
// each operation is allowed to return. Anything not listed on a projection
// never leaves the service layer.
package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain/card"
	"github.com/leotinoco7/supertrunfo/pkg/domain/deck"
	"github.com/leotinoco7/supertrunfo/pkg/domain/pack"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/shopspring/decimal"
)

// PublicProfile is returned on registration: no password and no image.
type PublicProfile struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	CPF     string          `json:"cpf"`
	IsAdmin bool            `json:"isAdmin"`
	Ranking int             `json:"ranking"`
	Balance decimal.Decimal `json:"balance"`
}

// AdminListing is one row of the admin user list: no password, cpf or image.
type AdminListing struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	IsAdmin   bool            `json:"isAdmin"`
	Ranking   int             `json:"ranking"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Profile is every user field except the password.
type Profile struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CPF       string          `json:"cpf"`
	ImageURL  string          `json:"imageUrl"`
	IsAdmin   bool            `json:"isAdmin"`
	Ranking   int             `json:"ranking"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Collection struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Card struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Rarity     string      `json:"rarity"`
	Type       string      `json:"type"`
	Attack     int         `json:"attack"`
	Defense    int         `json:"defense"`
	ImageURL   string      `json:"imageUrl"`
	Collection *Collection `json:"collection,omitempty"`
}

// OwnedCard is an album entry with the card it points to.
type OwnedCard struct {
	ID   uuid.UUID `json:"id"`
	Card *Card     `json:"card,omitempty"`
}

type Deck struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Cards []OwnedCard `json:"cards"`
}

// AccountWithDeck is the caller's own account view.
type AccountWithDeck struct {
	Profile
	Deck       *Deck `json:"deck"`
	OwnedCards int64 `json:"ownedCards"`
}

// Album lists every card a user owns.
type Album struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Cards []OwnedCard `json:"cards"`
}

type Pack struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CardCount  int             `json:"cardCount"`
	Collection *Collection     `json:"collection,omitempty"`
}

func ToPublicProfile(u *user.User) PublicProfile {
	return PublicProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		CPF:     u.CPF,
		IsAdmin: u.IsAdmin,
		Ranking: u.Ranking,
		Balance: u.Balance,
	}
}

func ToAdminListing(users []*user.User) []AdminListing {
	out := make([]AdminListing, 0, len(users))
	for _, u := range users {
		out = append(out, AdminListing{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			Ranking:   u.Ranking,
			Balance:   u.Balance,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out
}

func ToProfile(u *user.User) Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		ImageURL:  u.ImageURL,
		IsAdmin:   u.IsAdmin,
		Ranking:   u.Ranking,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToAccountWithDeck expects u to be loaded with its deck and owned-card count.
func ToAccountWithDeck(u *user.User) AccountWithDeck {
	return AccountWithDeck{
		Profile:    ToProfile(u),
		Deck:       toDeckPtr(u.Deck),
		OwnedCards: u.OwnedCards,
	}
}

// ToAlbum expects u to be loaded with its album.
func ToAlbum(u *user.User) Album {
	return Album{ID: u.ID, Name: u.Name, Cards: ToOwnedCards(u.Album)}
}

func ToCollection(c *card.Collection) *Collection {
	if c == nil {
		return nil
	}
	return &Collection{ID: c.ID, Name: c.Name}
}

func ToCollections(cs []*card.Collection) []Collection {
	out := make([]Collection, 0, len(cs))
	for _, c := range cs {
		out = append(out, *ToCollection(c))
	}
	return out
}

func ToCard(c *card.Card) *Card {
	if c == nil {
		return nil
	}
	return &Card{
		ID:         c.ID,
		Name:       c.Name,
		Rarity:     c.Rarity,
		Type:       c.Type,
		Attack:     c.Attack,
		Defense:    c.Defense,
		ImageURL:   c.ImageURL,
		Collection: ToCollection(c.Collection),
	}
}

func ToCards(cs []*card.Card) []Card {
	out := make([]Card, 0, len(cs))
	for _, c := range cs {
		out = append(out, *ToCard(c))
	}
	return out
}

func ToOwnedCards(owned []card.Ownership) []OwnedCard {
	out := make([]OwnedCard, 0, len(owned))
	for i := range owned {
		out = append(out, OwnedCard{ID: owned[i].ID, Card: ToCard(owned[i].Card)})
	}
	return out
}

func ToDeck(d *deck.Deck) Deck {
	return Deck{ID: d.ID, Name: d.Name, Cards: ToOwnedCards(d.Cards)}
}

func toDeckPtr(d *deck.Deck) *Deck {
	if d == nil {
		return nil
	}
	out := ToDeck(d)
	return &out
}

func ToPack(p *pack.Pack) Pack {
	return Pack{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CardCount:  p.CardCount,
		Collection: ToCollection(p.Collection),
	}
}

func ToPacks(ps []*pack.Pack) []Pack {
	out := make([]Pack, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPack(p))
	}
	return out
}
