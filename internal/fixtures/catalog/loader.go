// Package catalog loads the starter card catalog from CSV and seeds it
// through the catalog services.
package catalog

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed cards.csv
var cardsCSV string

//go:embed packs.csv
var packsCSV string

type CardSeed struct {
	Name     string
	Rarity   string
	Type     string
	Attack   int
	Defense  int
	ImageURL string
}

type PackSeed struct {
	Name      string
	Price     decimal.Decimal
	CardCount int
}

// CollectionSeed groups the cards and packs of one collection.
type CollectionSeed struct {
	Name  string
	Cards []CardSeed
	Packs []PackSeed
}

// Load reads the cards and packs CSV files, using the embedded catalog for
// an empty path. Collections keep the order in which they first appear in
// the cards file; a pack naming an unknown collection is an error.
func Load(cardsPath, packsPath string) ([]CollectionSeed, error) {
	cardsReader, closeCards, err := open(cardsPath, cardsCSV)
	if err != nil {
		return nil, err
	}
	defer closeCards()
	packsReader, closePacks, err := open(packsPath, packsCSV)
	if err != nil {
		return nil, err
	}
	defer closePacks()

	seeds, err := parseCards(cardsReader)
	if err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	if err := parsePacks(packsReader, seeds); err != nil {
		return nil, fmt.Errorf("packs: %w", err)
	}
	return seeds, nil
}

func open(path, embedded string) (io.Reader, func(), error) {
	if path == "" {
		return strings.NewReader(embedded), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func readRecords(r io.Reader, columns int) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < columns {
		return nil, fmt.Errorf("invalid CSV format: expected a header with %d columns", columns)
	}
	return records[1:], nil
}

func parseCards(r io.Reader) ([]CollectionSeed, error) {
	records, err := readRecords(r, 7)
	if err != nil {
		return nil, err
	}
	var seeds []CollectionSeed
	index := map[string]int{}
	for i, rec := range records {
		line := i + 2
		if len(rec) < 7 {
			return nil, fmt.Errorf("line %d: expected 7 columns, got %d", line, len(rec))
		}
		attack, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			return nil, fmt.Errorf("line %d: attack: %w", line, err)
		}
		defense, err := strconv.Atoi(strings.TrimSpace(rec[5]))
		if err != nil {
			return nil, fmt.Errorf("line %d: defense: %w", line, err)
		}
		name := strings.TrimSpace(rec[0])
		pos, ok := index[name]
		if !ok {
			pos = len(seeds)
			index[name] = pos
			seeds = append(seeds, CollectionSeed{Name: name})
		}
		seeds[pos].Cards = append(seeds[pos].Cards, CardSeed{
			Name:     strings.TrimSpace(rec[1]),
			Rarity:   strings.TrimSpace(rec[2]),
			Type:     strings.TrimSpace(rec[3]),
			Attack:   attack,
			Defense:  defense,
			ImageURL: strings.TrimSpace(rec[6]),
		})
	}
	return seeds, nil
}

func parsePacks(r io.Reader, seeds []CollectionSeed) error {
	records, err := readRecords(r, 4)
	if err != nil {
		return err
	}
	for i, rec := range records {
		line := i + 2
		if len(rec) < 4 {
			return fmt.Errorf("line %d: expected 4 columns, got %d", line, len(rec))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return fmt.Errorf("line %d: price: %w", line, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return fmt.Errorf("line %d: card_count: %w", line, err)
		}
		name := strings.TrimSpace(rec[0])
		found := false
		for j := range seeds {
			if seeds[j].Name == name {
				seeds[j].Packs = append(seeds[j].Packs, PackSeed{
					Name:      strings.TrimSpace(rec[1]),
					Price:     price,
					CardCount: count,
				})
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("line %d: unknown collection %q", line, name)
		}
	}
	return nil
}
