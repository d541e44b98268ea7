package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:100;not null"`
	Email     string          `gorm:"size:255;not null;uniqueIndex:users_email_key"`
	CPF       string          `gorm:"column:cpf;size:11;not null;uniqueIndex:users_cpf_key"`
	Password  string          `gorm:"size:255;not null"`
	ImageURL  string          `gorm:"column:image_url"`
	Ranking   int             `gorm:"not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsAdmin   bool            `gorm:"column:is_admin;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Deck  *Deck        `gorm:"foreignKey:UserID"`
	Album []UserToCard `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Collection represents a card collection record.
type Collection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:collections_name_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Collection) TableName() string {
	return "collections"
}

// Card represents a catalog card record.
type Card struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Rarity       string    `gorm:"size:50;not null"`
	Type         string    `gorm:"column:type;size:50;not null"`
	Attack       int       `gorm:"not null"`
	Defense      int       `gorm:"not null"`
	ImageURL     string    `gorm:"column:image_url"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Collection *Collection `gorm:"foreignKey:CollectionID"`
}

func (Card) TableName() string {
	return "cards"
}

// UserToCard is one album entry: a copy of a card owned by a user.
type UserToCard struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CardID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time

	Card *Card `gorm:"foreignKey:CardID"`
}

func (UserToCard) TableName() string {
	return "user_to_cards"
}

// Deck represents a deck record. Cards is read through the deck_cards join
// table; writes go through DeckCard directly.
type Deck struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:decks_user_id_key"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cards []UserToCard `gorm:"many2many:deck_cards;joinForeignKey:DeckID;joinReferences:UserToCardID"`
}

func (Deck) TableName() string {
	return "decks"
}

// DeckCard links a deck to one album entry.
type DeckCard struct {
	DeckID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserToCardID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (DeckCard) TableName() string {
	return "deck_cards"
}

// Pack represents a purchasable pack record.
type Pack struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"size:100;not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CardCount    int             `gorm:"not null"`
	CollectionID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Collection *Collection `gorm:"foreignKey:CollectionID"`
}

func (Pack) TableName() string {
	return "packs"
}
