package models

import (
	"fmt"

	"github.com/pocket-ledger/backend/internal/money"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCategories are created on first start when the registry is empty.
// Budgets are in major units of the configured currency.
var DefaultCategories = []struct {
	Name   string
	Budget int64
}{
	{"Food", 200},
	{"Transport", 100},
	{"Housing", 500},
	{"Leisure", 50},
	{"Subscriptions", 30},
	{"Health", 50},
	{"Other", 100},
	{"Salary", 0},
}

// SeedCategories creates the default categories if no category exists.
func SeedCategories(db *gorm.DB) (int, error) {
	var count int64
	err := db.Model(&Category{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	if count > 0 {
		return 0, nil
	}

	categories := make([]Category, 0, len(DefaultCategories))
	for _, c := range DefaultCategories {
		budget, err := money.FromDecimal(decimal.NewFromInt(c.Budget))
		if err != nil {
			return 0, err
		}

		categories = append(categories, Category{Name: c.Name, Budget: budget})
	}

	err = db.Create(&categories).Error
	if err != nil {
		return 0, fmt.Errorf("could not seed default categories: %w", err)
	}

	log.Info().Int("count", len(categories)).Msg("created default categories")
	return len(categories), nil
}
