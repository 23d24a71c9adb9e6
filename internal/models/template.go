package models

import (
	"strings"

	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// RecurringTemplate describes a transaction that occurs every month,
// e.g. rent or a salary.
type RecurringTemplate struct {
	DefaultModel
	Amount      money.Amount    `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
}

func (RecurringTemplate) Self() string {
	return "Recurring Template"
}

func (r *RecurringTemplate) BeforeSave(_ *gorm.DB) error {
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)

	return r.Validate()
}

// Validate checks the template for invalid values.
func (r RecurringTemplate) Validate() error {
	if r.Amount <= 0 {
		return ErrAmountNotPositive
	}

	if !r.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

// Instantiate returns the transaction the template produces for a date.
func (r RecurringTemplate) Instantiate(date types.Date) Transaction {
	id := r.ID

	return Transaction{
		Date:        date,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Type:        r.Type,
		TemplateID:  &id,
	}
}
