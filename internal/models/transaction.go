package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports if the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense entry in the ledger.
// Transactions are never updated, only created and deleted.
type Transaction struct {
	DefaultModel
	Date        types.Date      `json:"date" gorm:"index" swaggertype:"string" example:"2024-05-17"`
	Amount      money.Amount    `json:"amount"` // Always positive, the direction is given by the type
	Category    string          `json:"category" gorm:"index"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type" gorm:"index"`
	TemplateID  *uuid.UUID      `json:"templateId"` // The recurring template this transaction was created from
}

func (Transaction) Self() string {
	return "Transaction"
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)

	return t.Validate()
}

// Validate checks the transaction for invalid values.
func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrAmountNotPositive
	}

	if t.Date.IsZero() {
		return ErrDateInvalid
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}
