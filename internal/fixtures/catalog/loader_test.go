package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leotinoco7/supertrunfo/internal/fixtures/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Embedded(t *testing.T) {
	seeds, err := catalog.Load("", "")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Dinossauros", seeds[0].Name)
	assert.Len(t, seeds[0].Cards, 6)
	assert.Len(t, seeds[0].Packs, 2)
	for _, seed := range seeds {
		for _, p := range seed.Packs {
			assert.True(t, p.Price.IsPositive())
			assert.Positive(t, p.CardCount)
		}
	}
}

func TestLoad_FromFiles(t *testing.T) {
	cards := writeTemp(t, "cards.csv", `collection,name,rarity,type,attack,defense,image_url
Motos,Scooter,comum,urbana,30,20,
Naves,Cruzador,rara,nave,80,70,https://img.example/cruzador.png
Motos,Chopper,rara,estrada,60,50,
`)
	packs := writeTemp(t, "packs.csv", `collection,name,price,card_count
Motos,Pacote Duas Rodas,25.50,2
`)

	seeds, err := catalog.Load(cards, packs)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Motos", seeds[0].Name)
	assert.Equal(t, []string{"Scooter", "Chopper"}, []string{seeds[0].Cards[0].Name, seeds[0].Cards[1].Name})
	assert.Equal(t, "https://img.example/cruzador.png", seeds[1].Cards[0].ImageURL)
	require.Len(t, seeds[0].Packs, 1)
	assert.True(t, decimal.RequireFromString("25.50").Equal(seeds[0].Packs[0].Price))
	assert.Empty(t, seeds[1].Packs)
}

func TestLoad_Errors(t *testing.T) {
	header := "collection,name,rarity,type,attack,defense,image_url\n"
	packHeader := "collection,name,price,card_count\n"
	tests := []struct {
		name  string
		cards string
		packs string
	}{
		{"bad attack", header + "A,x,c,t,strong,1,\n", packHeader},
		{"short row", header + "A,x,c\n", packHeader},
		{"short header", "collection,name\n", packHeader},
		{"unknown collection", header + "A,x,c,t,1,1,\n", packHeader + "B,p,10,1\n"},
		{"bad price", header + "A,x,c,t,1,1,\n", packHeader + "A,p,ten,1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Load(writeTemp(t, "c.csv", tc.cards), writeTemp(t, "p.csv", tc.packs))
			assert.Error(t, err)
		})
	}

	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
