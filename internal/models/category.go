package models

import (
	"strings"

	"github.com/pocket-ledger/backend/internal/money"
	"gorm.io/gorm"
)

// Category is a named budget bucket.
//
// Transactions reference categories by name, so deleting a category
// does not touch any transaction.
type Category struct {
	DefaultModel
	Name   string       `json:"name"`
	Budget money.Amount `json:"budget"` // Monthly budget in minor units, 0 means the category is not tracked
}

func (Category) Self() string {
	return "Category"
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	return c.Validate()
}

// Validate checks the category for invalid values.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameEmpty
	}

	if c.Budget < 0 {
		return ErrBudgetNegative
	}

	return nil
}
